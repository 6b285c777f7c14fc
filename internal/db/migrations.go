package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'complaint_type') THEN
			CREATE TYPE complaint_type AS ENUM ('Service', 'Electricity', 'Water', 'Cleanliness', 'Security', 'Other');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'urgency_level') THEN
			CREATE TYPE urgency_level AS ENUM ('Emergency', 'Urgent', 'Normal');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'complaint_status') THEN
			CREATE TYPE complaint_status AS ENUM ('New', 'In Progress', 'Completed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tracking_id VARCHAR(32) NOT NULL,
		type complaint_type NOT NULL,
		urgency urgency_level NOT NULL,
		location VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		notes TEXT,
		attachment_ref TEXT,
		contact_number VARCHAR(32) NOT NULL,
		status complaint_status NOT NULL DEFAULT 'New',
		admin_notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_complaints_tracking_id ON complaints (upper(tracking_id));`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints (status);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_type ON complaints (type);`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints (created_at);`,
	`CREATE TABLE IF NOT EXISTS complaint_status_history (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		complaint_id UUID NOT NULL REFERENCES complaints(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		status complaint_status NOT NULL,
		notes TEXT,
		changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_complaint_status_history_seq ON complaint_status_history (complaint_id, seq);`,
	`CREATE TABLE IF NOT EXISTS announcements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_announcements_created_at ON announcements (created_at);`,
	`CREATE TABLE IF NOT EXISTS achievements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_achievements_created_at ON achievements (created_at);`,
	`INSERT INTO announcements (id, title, body, created_at) VALUES
		('6f1d7a0e-3c1b-4f57-9a1e-2b0f6c1d9a01', 'Power Outage Notification',
			'There will be a planned power outage tomorrow from 9 AM to 2 PM for maintenance work.', NOW()),
		('6f1d7a0e-3c1b-4f57-9a1e-2b0f6c1d9a02', 'Water Pipe Repair',
			'Water supply might be limited in the northern area of Block 5 on Wednesday due to pipe repairs.', NOW() - INTERVAL '3 days')
	ON CONFLICT (id) DO NOTHING;`,
	`INSERT INTO achievements (id, title, description, image_url, created_at) VALUES
		('9c2e4b1f-7d3a-4e68-8b2f-3c1a7d2e8b01', 'New Park Benches Installed',
			'We have installed 10 new benches in the community park for everyone to enjoy.',
			'https://picsum.photos/seed/parkbench/400/300', NOW()),
		('9c2e4b1f-7d3a-4e68-8b2f-3c1a7d2e8b02', 'Streetlight Upgrade Project Completed',
			'All streetlights in Block 5 have been upgraded to energy-efficient LEDs, improving safety and visibility.',
			'https://picsum.photos/seed/streetlight/400/300', NOW() - INTERVAL '7 days')
	ON CONFLICT (id) DO NOTHING;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
