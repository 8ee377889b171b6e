// Command seed loads content JSON exports into the database. It is the
// local-development counterpart of the admin ingestion API: posts.json is a
// bulk post payload array and topics.json maps topic slugs to topic trees.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	"devpress/cmd/api/dto"
	"devpress/cmd/api/services"
	"devpress/config"
	"devpress/db"
)

func main() {
	dir := flag.String("dir", "content", "directory with posts.json / topics.json")
	flag.Parse()

	config.InitApp()
	if err := db.Init(); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	ctx := context.Background()

	if payloads, ok := readPosts(*dir); ok {
		resp := services.NewAdminPostService(db.Database()).BulkUpsert(ctx, payloads)
		log.Printf("posts: created=%d updated=%d failed=%d", resp.Created, resp.Updated, resp.Failed)
		for _, result := range resp.Results {
			if result.Status == dto.StatusFailed {
				log.Printf("  %s: %s", result.Slug, result.Error)
			}
		}
	}

	if topics, ok := readTopics(*dir); ok {
		learn := services.NewLearnService(db.Database())
		// 맵 순회 순서에 의존하지 않도록 슬러그 순으로 적재한다.
		slugs := make([]string, 0, len(topics))
		for slug := range topics {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)
		for _, slug := range slugs {
			created, err := learn.UpsertTopic(ctx, slug, topics[slug])
			if err != nil {
				log.Printf("topic %s: %v", slug, err)
				continue
			}
			if created {
				log.Printf("topic %s: created", slug)
			} else {
				log.Printf("topic %s: updated", slug)
			}
		}
	}
}

func readPosts(dir string) ([]dto.PostUpsertPayload, bool) {
	var payloads []dto.PostUpsertPayload
	if !readJSON(filepath.Join(dir, "posts.json"), &payloads) {
		return nil, false
	}
	return payloads, true
}

func readTopics(dir string) (map[string]dto.TopicUpsertPayload, bool) {
	topics := map[string]dto.TopicUpsertPayload{}
	if !readJSON(filepath.Join(dir, "topics.json"), &topics) {
		return nil, false
	}
	return topics, true
}

func readJSON(path string, out any) bool {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("skip %s: not found", path)
		return false
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}
	return true
}
