package client

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
}

// NewCommands creates a new Commands instance
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
	}
}

// Create creates a project group and displays the generated code
func (c *Commands) Create(ctx context.Context, urls []string) error {
	result, err := c.client.CreateGroup(ctx, urls)
	if err != nil {
		return err
	}

	fmt.Printf("Project group created:\n")
	fmt.Printf("Code: %s\n", result.Code)
	fmt.Printf("Group URL: %s\n", result.GroupURL)
	fmt.Printf("URLs stored: %d\n", result.URLCount)
	fmt.Printf("Created At: %s\n", result.CreatedAt.Format(time.RFC3339))

	return nil
}

// View resolves and displays a project group
func (c *Commands) View(ctx context.Context, code string) error {
	view, err := c.client.GetGroup(ctx, code)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Group '%s' not found\n", code)
			return nil
		}
		return err
	}

	fmt.Printf("Project group %s (%d items):\n", view.Code, len(view.Results))
	for i, result := range view.Results {
		if !result.OK() {
			fmt.Printf("%d. %s: FAILED (%s)\n", i+1, result.Ref.ID, result.Err)
			continue
		}
		m := result.Metadata
		fmt.Printf("%d. %s by %s - views: %d, likes: %d, comments: %d\n",
			i+1, m.Name, m.AuthorNickname, m.ViewCount, m.LikeCount, m.CommentCount)
	}

	return nil
}
