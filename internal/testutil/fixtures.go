package testutil

import (
	"fmt"
)

// Posts returns n JSONPlaceholder-shaped posts with IDs 1..n, ten per user.
func Posts(n int) []map[string]any {
	posts := make([]map[string]any, n)
	for i := range posts {
		id := i + 1
		posts[i] = map[string]any{
			"userId": (id-1)/10 + 1,
			"id":     id,
			"title":  fmt.Sprintf("post %d", id),
			"body":   fmt.Sprintf("body of post %d", id),
		}
	}
	return posts
}

// Comments returns n comments attached to postID.
func Comments(postID, n int) []map[string]any {
	comments := make([]map[string]any, n)
	for i := range comments {
		id := (postID-1)*n + i + 1
		comments[i] = map[string]any{
			"postId": postID,
			"id":     id,
			"name":   fmt.Sprintf("comment %d", id),
			"email":  fmt.Sprintf("user%d@example.com", id),
			"body":   "nice post",
		}
	}
	return comments
}

// User returns a user with the given ID.
func User(id int) map[string]any {
	return map[string]any{
		"id":       id,
		"name":     fmt.Sprintf("User %d", id),
		"username": fmt.Sprintf("user%d", id),
		"email":    fmt.Sprintf("user%d@example.com", id),
		"address": map[string]any{
			"street":  "Kulas Light",
			"suite":   "Apt. 556",
			"city":    "Gwenborough",
			"zipcode": "92998-3874",
			"geo":     map[string]any{"lat": "-37.3159", "lng": "81.1496"},
		},
		"phone":   "1-770-736-8031",
		"website": "example.org",
		"company": map[string]any{
			"name":        "Romaguera-Crona",
			"catchPhrase": "Multi-layered client-server neural-net",
			"bs":          "harness real-time e-markets",
		},
	}
}
