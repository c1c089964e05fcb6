package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/zhouzirui/masterblog/backend/internal/client"
	"github.com/zhouzirui/masterblog/backend/internal/config"
	"github.com/zhouzirui/masterblog/backend/internal/model/post"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file, using system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "", "operation: list, create, update, delete or search")
	api := flag.String("api", cfg.Web.APIBaseURL, "API base URL")
	sortField := flag.String("sort", "", "list: sort field (title or content)")
	direction := flag.String("direction", "", "list: sort direction (asc or desc)")
	id := flag.Int("id", 0, "update/delete: post id")
	title := flag.String("title", "", "create/update/search: title")
	content := flag.String("content", "", "create/update/search: content")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := client.New(*api, nil)

	var result any
	switch *mode {
	case "list":
		result, err = c.List(ctx, post.ListOptions{Sort: *sortField, Direction: *direction})
	case "create":
		result, err = c.Create(ctx, *title, *content)
	case "update":
		requireID(*id)
		result, err = c.Update(ctx, *id, patchFromFlags())
	case "delete":
		requireID(*id)
		var msg string
		msg, err = c.Delete(ctx, *id)
		result = map[string]string{"message": msg}
	case "search":
		result, err = c.Search(ctx, post.Filter{Title: *title, Content: *content})
	default:
		flag.Usage()
		log.Fatal("choose an operation with -mode")
	}
	if err != nil {
		log.Fatalf("%s failed: %v", *mode, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("failed to print result: %v", err)
	}
}

func requireID(id int) {
	if id < 1 {
		log.Fatal("-id is required")
	}
}

// patchFromFlags only sends the fields given explicitly on the command line.
func patchFromFlags() post.Patch {
	var patch post.Patch
	flag.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "title":
			patch.Title = &value
		case "content":
			patch.Content = &value
		}
	})
	return patch
}
