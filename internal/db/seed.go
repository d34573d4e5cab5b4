package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures.
// Uses realistic IDs and data that exercises the full entity graph.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	projects := []struct{ id, name, desc string }{
		{"PROJ-001", "Checkout", "Web checkout flow"},
		{"PROJ-002", "Mobile App", "iOS and Android clients"},
	}
	for _, p := range projects {
		if _, err := database.Exec(
			"INSERT INTO projects (id, name, description, created_by, status, created_at) VALUES (?, ?, ?, 'seed', 'active', ?)",
			p.id, p.name, p.desc, now,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	stories := []struct{ id, projectID, title, desc, priority, status string }{
		{"US-001", "PROJ-001", "Guest Checkout", "As a guest I want to check out without registering", "high", "ready"},
		{"US-002", "PROJ-001", "Saved Cards", "As a returning customer I want to pay with a saved card", "medium", "draft"},
		{"US-003", "PROJ-002", "Push Notifications", "As a user I want order updates as push notifications", "low", "draft"},
	}
	for _, s := range stories {
		if _, err := database.Exec(
			"INSERT INTO user_stories (id, project_id, title, description, priority, status, source, created_at) VALUES (?, ?, ?, ?, ?, ?, 'manual', ?)",
			s.id, s.projectID, s.title, s.desc, s.priority, s.status, now,
		); err != nil {
			return fmt.Errorf("seed stories: %w", err)
		}
	}

	cases := []struct{ id, projectID, storyID, title, steps, expected, status string }{
		{"TC-001", "PROJ-001", "US-001", "Guest completes checkout with valid card",
			"Open cart\nProceed as guest\nEnter valid card\nConfirm order", "Order confirmation page is shown", "passed"},
		{"TC-002", "PROJ-001", "US-001", "Guest checkout rejects expired card",
			"Open cart\nProceed as guest\nEnter expired card\nConfirm order", "Validation error on card expiry", "not_run"},
	}
	for _, c := range cases {
		if _, err := database.Exec(
			"INSERT INTO test_cases (id, project_id, user_story_id, readable_id, title, steps, expected_result, priority, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'medium', ?, ?)",
			c.id, c.projectID, c.storyID, c.id, c.title, c.steps, c.expected, c.status, now,
		); err != nil {
			return fmt.Errorf("seed test cases: %w", err)
		}
	}

	members := []struct{ id, projectID, member, role string }{
		{"PM-001", "PROJ-001", "seed", "owner"},
		{"PM-002", "PROJ-002", "seed", "owner"},
	}
	for _, m := range members {
		if _, err := database.Exec(
			"INSERT INTO project_members (id, project_id, member, role, created_at) VALUES (?, ?, ?, ?, ?)",
			m.id, m.projectID, m.member, m.role, now,
		); err != nil {
			return fmt.Errorf("seed members: %w", err)
		}
	}

	return nil
}
