package postgres

// GetMigrations returns all embedded migrations in order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_professors",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_team_memberships",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_users",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE PROFESSORS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create professors table
-- Version: 001

CREATE TABLE IF NOT EXISTS professors (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(100) NOT NULL UNIQUE,
    cost INTEGER NOT NULL DEFAULT 0,
    score INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    -- Score is a running signed total and may go negative; cost may not.
    CONSTRAINT valid_cost CHECK (cost >= 0)
);

CREATE INDEX IF NOT EXISTS idx_professors_name ON professors(name);
CREATE INDEX IF NOT EXISTS idx_professors_created_at ON professors(created_at);
`

const migration001Down = `
DROP TABLE IF EXISTS professors;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE TEAM MEMBERSHIPS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create team_memberships table
-- Version: 002

-- One row per hired professor. No foreign key to professors: a deleted
-- professor leaves its membership rows behind and the slot scores zero.
CREATE TABLE IF NOT EXISTS team_memberships (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    team_name VARCHAR(100) NOT NULL,
    -- Opaque identifier owned by the caller, not a users.id foreign key.
    user_id VARCHAR(100) NOT NULL,
    professor_id UUID NOT NULL,
    is_captain BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_team_memberships_user_id ON team_memberships(user_id);
CREATE INDEX IF NOT EXISTS idx_team_memberships_team_name ON team_memberships(team_name);
CREATE INDEX IF NOT EXISTS idx_team_memberships_created_at ON team_memberships(created_at);
`

const migration002Down = `
DROP TABLE IF EXISTS team_memberships;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create users table
-- Version: 003

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(100) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'player',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_role CHECK (role IN ('admin', 'player'))
);

CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
`

const migration003Down = `
DROP TABLE IF EXISTS users;
`
