package warmup

import (
	"context"

	"github.com/Sternrassler/placeholder-proxy/pkg/placeholder"
)

// ResourceTasks returns one task per top-level resource list.
func ResourceTasks(api *placeholder.API) []Task {
	return []Task{
		listTask("posts", api.Posts),
		listTask("comments", api.Comments),
		listTask("users", api.Users),
		listTask("albums", api.Albums),
		listTask("photos", api.Photos),
		listTask("todos", api.Todos),
	}
}

func listTask[T any](name string, load func(context.Context) ([]T, error)) Task {
	return Task{
		Name: name,
		Run: func(ctx context.Context) error {
			_, err := load(ctx)
			return err
		},
	}
}
