package primary

import "context"

// StoryService defines the primary port for user story operations.
type StoryService interface {
	// CreateStory creates a new user story.
	CreateStory(ctx context.Context, req CreateStoryRequest) (*CreateStoryResponse, error)

	// GetStory retrieves a story by ID.
	GetStory(ctx context.Context, storyID string) (*Story, error)

	// ListStories lists stories with optional filters.
	ListStories(ctx context.Context, filters StoryFilters) ([]*Story, error)

	// UpdateStory updates a story's mutable fields.
	UpdateStory(ctx context.Context, req UpdateStoryRequest) error

	// UpdateStoryStatus sets the story status.
	UpdateStoryStatus(ctx context.Context, storyID, status string) error

	// DeleteStory deletes a story and all its test cases.
	DeleteStory(ctx context.Context, storyID string) error
}

// Story is the user story domain type exposed to primary adapters.
type Story struct {
	ID                 string
	ProjectID          string
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
	Status             string
	Source             string
	CreatedAt          string
	UpdatedAt          string
}

// StoryFilters contains filter options for listing stories.
type StoryFilters struct {
	ProjectID string
	Status    string
	Priority  string
	Source    string
}

// CreateStoryRequest carries the inputs for story creation.
type CreateStoryRequest struct {
	ProjectID          string
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
}

// CreateStoryResponse carries the result of story creation.
type CreateStoryResponse struct {
	StoryID string
	Story   *Story
}

// UpdateStoryRequest carries the inputs for a story update.
type UpdateStoryRequest struct {
	StoryID            string
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
}
