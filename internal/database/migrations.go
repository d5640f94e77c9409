package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		photo_url VARCHAR(500),
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		password_hash VARCHAR(255),
		provider VARCHAR(50) NOT NULL DEFAULT 'password',
		provider_id VARCHAR(255),
		nid VARCHAR(50),
		address TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS policies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url VARCHAR(500),
		min_age INTEGER NOT NULL DEFAULT 18,
		max_age INTEGER NOT NULL DEFAULT 65,
		min_coverage NUMERIC(14,2) NOT NULL DEFAULT 0,
		max_coverage NUMERIC(14,2) NOT NULL DEFAULT 0,
		duration_options VARCHAR(255) NOT NULL DEFAULT '',
		base_premium_rate NUMERIC(8,5) NOT NULL DEFAULT 0.04,
		purchase_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		policy_id UUID NOT NULL REFERENCES policies(id) ON DELETE CASCADE,
		policy_title VARCHAR(255) NOT NULL,
		applicant_email VARCHAR(255) NOT NULL,
		applicant_name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		nid VARCHAR(50) NOT NULL DEFAULT '',
		phone VARCHAR(50) NOT NULL DEFAULT '',
		nominee_name VARCHAR(255) NOT NULL DEFAULT '',
		nominee_relation VARCHAR(100) NOT NULL DEFAULT '',
		health_conditions TEXT[] NOT NULL DEFAULT '{}',
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		rejection_feedback TEXT,
		agent_id UUID REFERENCES users(id),
		agent_name VARCHAR(255),
		agent_email VARCHAR(255),
		coverage_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		duration_years INTEGER NOT NULL DEFAULT 1,
		smoker BOOLEAN NOT NULL DEFAULT FALSE,
		premium_frequency VARCHAR(20) NOT NULL DEFAULT 'monthly',
		premium_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS blogs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		author_name VARCHAR(255) NOT NULL,
		author_email VARCHAR(255) NOT NULL,
		author_photo VARCHAR(500),
		total_visits INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS claims (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		application_id UUID NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		policy_title VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		reason TEXT NOT NULL,
		document_url VARCHAR(500),
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(application_id)
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		application_id UUID NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		customer_email VARCHAR(255) NOT NULL,
		policy_title VARCHAR(255) NOT NULL,
		amount_bdt NUMERIC(14,2) NOT NULL,
		amount_usd NUMERIC(14,2) NOT NULL,
		frequency VARCHAR(20) NOT NULL DEFAULT 'monthly',
		intent_id VARCHAR(255) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_name VARCHAR(255) NOT NULL,
		user_email VARCHAR(255) NOT NULL,
		user_photo VARCHAR(500),
		rating INTEGER NOT NULL,
		message TEXT NOT NULL,
		policy_title VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_policies_category ON policies(category)`,
	`CREATE INDEX IF NOT EXISTS idx_policies_purchase_count ON policies(purchase_count DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_applicant_email ON applications(applicant_email)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_agent_email ON applications(agent_email)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_author_email ON blogs(author_email)`,
	`CREATE INDEX IF NOT EXISTS idx_claims_customer_email ON claims(customer_email)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_customer_email ON payments(customer_email)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
