package db

// SchemaSQL is the complete schema for fresh testdeck installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests
// load it via GetSchemaSQL() so that repository code referencing a column
// that does not exist here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Projects (top-level container, soft-deleted via deleted_at)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	created_by TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	deleted_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Project membership
CREATE TABLE IF NOT EXISTS project_members (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	member TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('owner', 'editor', 'viewer')) DEFAULT 'editor',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id),
	UNIQUE(project_id, member)
);

-- User stories. Title uniqueness within a project is deliberately NOT
-- enforced here; sync deduplicates by case-insensitive title match only.
CREATE TABLE IF NOT EXISTS user_stories (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	acceptance_criteria TEXT,
	priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')) DEFAULT 'medium',
	status TEXT NOT NULL CHECK(status IN ('draft', 'ready', 'in_progress', 'completed')) DEFAULT 'draft',
	source TEXT NOT NULL CHECK(source IN ('manual', 'jira', 'azure')) DEFAULT 'manual',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

-- Test cases. Steps are a single newline-delimited string, split/joined
-- only at the CLI boundary. Cascade from user_stories is handled in the
-- service layer, not here.
CREATE TABLE IF NOT EXISTS test_cases (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	user_story_id TEXT,
	readable_id TEXT,
	title TEXT NOT NULL,
	description TEXT,
	steps TEXT,
	expected_result TEXT,
	test_data TEXT,
	type TEXT,
	priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')) DEFAULT 'medium',
	status TEXT NOT NULL CHECK(status IN ('not_run', 'passed', 'failed', 'blocked')) DEFAULT 'not_run',
	category TEXT,
	executed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id),
	FOREIGN KEY (user_story_id) REFERENCES user_stories(id)
);

-- AI usage log (append-only observability; nothing reads it back except
-- the usage listing)
CREATE TABLE IF NOT EXISTS ai_usage_log (
	id TEXT PRIMARY KEY,
	provider TEXT NOT NULL,
	model TEXT,
	operation TEXT NOT NULL,
	prompt_tokens INTEGER DEFAULT 0,
	completion_tokens INTEGER DEFAULT 0,
	cost_estimate REAL DEFAULT 0,
	latency_ms INTEGER DEFAULT 0,
	success INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Audit log for entity mutations
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	actor TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_stories_project ON user_stories(project_id);
CREATE INDEX IF NOT EXISTS idx_test_cases_project ON test_cases(project_id);
CREATE INDEX IF NOT EXISTS idx_test_cases_story ON test_cases(user_story_id);
CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables if they don't exist and applies pending
// migrations.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	return RunMigrations(database)
}
