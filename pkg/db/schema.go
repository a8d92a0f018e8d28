package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'networkdb' component. A database file holds
	// at most one network.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS kith_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS people (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    nickname TEXT NOT NULL DEFAULT '',
    how_we_met TEXT NOT NULL DEFAULT '',
    birthday TEXT,
    notes TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    is_self BOOLEAN NOT NULL DEFAULT FALSE,
    archived BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS network (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    owner_id UUID NOT NULL REFERENCES users(id),
    self_id UUID NOT NULL REFERENCES people(id),
    saved_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS custom_contact_types (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL COLLATE NOCASE UNIQUE
);

CREATE TABLE IF NOT EXISTS contact_entries (
    id UUID PRIMARY KEY,
    person_id UUID NOT NULL REFERENCES people(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    kind VARCHAR(32) NOT NULL,
    custom_type_id UUID,
    value TEXT NOT NULL DEFAULT '',
    street TEXT,
    city TEXT,
    state TEXT,
    zip TEXT,
    country TEXT,
    label TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS relationship_labels (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL COLLATE NOCASE UNIQUE,
    archived BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS relationships (
    person_id UUID PRIMARY KEY REFERENCES people(id) ON DELETE CASCADE,
    reminder_days INTEGER
);

CREATE TABLE IF NOT EXISTS relationship_label_assignments (
    person_id UUID NOT NULL REFERENCES relationships(person_id) ON DELETE CASCADE,
    label_id UUID NOT NULL REFERENCES relationship_labels(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    PRIMARY KEY (person_id, label_id)
);

CREATE TABLE IF NOT EXISTS interactions (
    id UUID PRIMARY KEY,
    person_id UUID NOT NULL REFERENCES relationships(person_id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    date TEXT NOT NULL,
    medium VARCHAR(32) NOT NULL,
    my_location TEXT NOT NULL,
    their_location TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS interaction_topics (
    interaction_id UUID NOT NULL REFERENCES interactions(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    topic TEXT NOT NULL,
    PRIMARY KEY (interaction_id, topic)
);

CREATE TABLE IF NOT EXISTS circles (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    archived BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS circle_members (
    circle_id UUID NOT NULL REFERENCES circles(id) ON DELETE CASCADE,
    person_id UUID NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (circle_id, person_id)
);

CREATE TABLE IF NOT EXISTS ai_corrections (
    id UUID PRIMARY KEY,
    original_text TEXT NOT NULL,
    ai_output TEXT NOT NULL,
    user_output TEXT NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_interactions_date ON interactions(date);
`
)
