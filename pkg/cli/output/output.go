/* Copyright 2025 MindToon Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"strings"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
)

func flagMarks(isFavorite, isPublic bool) string {
	var marks []string
	if isFavorite {
		marks = append(marks, log.ColorYellow.Sprint("★"))
	}
	if isPublic {
		marks = append(marks, log.ColorBlue.Sprint("public"))
	}
	if len(marks) == 0 {
		return ""
	}

	return " " + strings.Join(marks, " ")
}

// ComicInfo prints a comic's details
func ComicInfo(comic client.Comic) {
	log.Infof("title: %s%s\n", comic.Title, flagMarks(comic.IsFavorite, comic.IsPublic))
	log.Infof("world: %s\n", comic.WorldType.DisplayName())
	log.Infof("genre: %s\n", comic.Genre)
	log.Infof("art style: %s\n", comic.ArtStyle)
	log.Infof("comic id: %d\n", comic.ID)
	if comic.CreatedAt != "" {
		log.Infof("created at: %s\n", comic.CreatedAt)
	}
	if comic.ViewCount > 0 {
		log.Infof("views: %d\n", comic.ViewCount)
	}
	if comic.HasDetailedScenario {
		log.Infof("scenario: available\n")
	}

	if comic.Concept != "" {
		fmt.Printf("\n------------------------concept------------------------\n")
		fmt.Printf("%s", comic.Concept)
		fmt.Printf("\n-------------------------------------------------------\n")
	}
}

// ComicList prints one page of comics
func ComicList(comics []client.Comic, hasMore bool) {
	for _, comic := range comics {
		log.Plainf("%s %s (%s)%s\n", log.ColorGray.Sprintf("(%d)", comic.ID), comic.Title, comic.Genre, flagMarks(comic.IsFavorite, comic.IsPublic))
	}

	if hasMore {
		log.Plainf("%s\n", log.ColorGray.Sprint("more results available. rerun with a higher --page."))
	}
}

// StatsInfo prints a world's stats snapshot
func StatsInfo(stats client.WorldStats) {
	log.Plainf("%s\n", log.ColorBlue.Sprint(stats.WorldType.DisplayName()))
	log.Plainf("comics: %d\n", stats.TotalComics)
	log.Plainf("favorites: %d\n", stats.FavoriteComics)
	log.Plainf("public: %d\n", stats.PublicComics)
	log.Plainf("collections: %d\n", stats.TotalCollections)
	if stats.ScenariosKnown {
		log.Plainf("scenarios: %d\n", stats.TotalScenarios)
	} else {
		log.Plainf("scenarios: unknown\n")
	}
	if stats.LastActivity != nil {
		log.Plainf("last activity: %s\n", *stats.LastActivity)
	}
}

// AnalyticsInfo prints a world's analytics snapshot
func AnalyticsInfo(analytics client.WorldAnalytics) {
	log.Plainf("%s\n", log.ColorBlue.Sprint(analytics.WorldType.DisplayName()))
	log.Plainf("activity score: %.1f\n", analytics.ActivityScore)

	if len(analytics.CreationTrends) > 0 {
		log.Plainf("creation trends:\n")
		for _, trend := range analytics.CreationTrends {
			log.Plainf("  %s: %d\n", trend.Date, trend.Count)
		}
	}
	if len(analytics.PopularThemes) > 0 {
		log.Plainf("popular themes:\n")
		for _, theme := range analytics.PopularThemes {
			log.Plainf("  %s: %d\n", theme.Theme, theme.Count)
		}
	}
	if len(analytics.GenreDistribution) > 0 {
		log.Plainf("genres:\n")
		for _, genre := range analytics.GenreDistribution {
			log.Plainf("  %s: %d\n", genre.Genre, genre.Count)
		}
	}
}

// ScenarioInfo prints a scenario's details
func ScenarioInfo(scenario client.Scenario) {
	log.Infof("title: %s\n", scenario.Title)
	log.Infof("world: %s\n", scenario.WorldType.DisplayName())
	log.Infof("genre: %s\n", scenario.Genre)
	log.Infof("comic id: %d\n", scenario.ComicID)
	if scenario.WordCount > 0 {
		log.Infof("word count: %d\n", scenario.WordCount)
	}
	if scenario.ReadingTimeMinutes > 0 {
		log.Infof("reading time: %d min\n", scenario.ReadingTimeMinutes)
	}

	if premise := scenario.Premise(); premise != "" {
		fmt.Printf("\n------------------------premise------------------------\n")
		fmt.Printf("%s", premise)
		fmt.Printf("\n-------------------------------------------------------\n")
	}
}

// CollectionInfo prints a collection's details
func CollectionInfo(collection client.Collection) {
	log.Infof("name: %s%s\n", collection.Name, flagMarks(false, collection.IsPublic))
	log.Infof("world: %s\n", collection.WorldType.DisplayName())
	log.Infof("collection id: %d\n", collection.ID)
	log.Infof("comics: %d\n", collection.ComicsCount)
	if collection.Description != nil && *collection.Description != "" {
		log.Infof("description: %s\n", *collection.Description)
	}
	if len(collection.Tags) > 0 {
		log.Infof("tags: %s\n", strings.Join(collection.Tags, ", "))
	}
}

// CollectionList prints a list of collections
func CollectionList(collections []client.Collection) {
	for _, collection := range collections {
		log.Plainf("%s %s (%d comics)%s\n", log.ColorGray.Sprintf("(%d)", collection.ID), collection.Name, collection.ComicsCount, flagMarks(false, collection.IsPublic))
	}
}

// UserInfo prints the identity of a user
func UserInfo(user client.RespUser) {
	log.Infof("username: %s\n", user.Username)
	log.Infof("email: %s\n", user.Email)
	if user.FullName != "" {
		log.Infof("full name: %s\n", user.FullName)
	}
}

// DeletionSummary prints what the server removed along with an account
func DeletionSummary(summary client.DeletionSummary) {
	log.Plainf("comics deleted: %d\n", summary.ComicsDeleted)
	log.Plainf("collections deleted: %d\n", summary.CollectionsDeleted)
	log.Plainf("scenarios deleted: %d\n", summary.ScenariosDeleted)
	if summary.StorageCleared != "" {
		log.Plainf("storage cleared: %s\n", summary.StorageCleared)
	}
}
