package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Referenced rows are protected with ON DELETE RESTRICT: deleting a customer,
// agreement or car that is still in use fails with a foreign key violation
// instead of cascading. Composite (tenant_id, id) foreign keys keep every
// reference inside one tenant.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'customer_type') THEN
			CREATE TYPE customer_type AS ENUM ('PRIVATE', 'BUSINESS');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'employee_status') THEN
			CREATE TYPE employee_status AS ENUM ('AVAILABLE', 'UNAVAILABLE', 'ON_LEAVE', 'SUSPENDED', 'SICK_LEAVE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'car_status') THEN
			CREATE TYPE car_status AS ENUM ('AVAILABLE', 'IN_USE', 'MAINTENANCE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'container_status') THEN
			CREATE TYPE container_status AS ENUM ('AVAILABLE', 'UNAVAILABLE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_status') THEN
			CREATE TYPE job_status AS ENUM ('UNASSIGNED', 'ASSIGNED', 'COMPLETED', 'OVERDUE');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		name VARCHAR(255) NOT NULL,
		type customer_type NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		city VARCHAR(128) NOT NULL DEFAULT '',
		postal_code VARCHAR(32) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id)
	);`,
	`CREATE TABLE IF NOT EXISTS cars (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		regnr VARCHAR(32) NOT NULL,
		model VARCHAR(128) NOT NULL DEFAULT '',
		status car_status NOT NULL DEFAULT 'AVAILABLE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cars_tenant_regnr ON cars (tenant_id, regnr);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		status employee_status NOT NULL DEFAULT 'AVAILABLE',
		car_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id),
		FOREIGN KEY (tenant_id, car_id) REFERENCES cars (tenant_id, id) ON DELETE RESTRICT
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_employees_car_id ON employees (car_id) WHERE car_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS containers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		rfid VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		capacity_m3 NUMERIC(10,2) NOT NULL DEFAULT 0,
		type VARCHAR(32) NOT NULL DEFAULT 'UNKNOWN',
		status container_status NOT NULL DEFAULT 'AVAILABLE',
		available_at DATE NOT NULL DEFAULT NOW(),
		job_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_containers_rfid ON containers (rfid);`,
	`CREATE TABLE IF NOT EXISTS agreements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		customer_id UUID NOT NULL,
		container_id UUID,
		type VARCHAR(32) NOT NULL DEFAULT 'UNKNOWN',
		status VARCHAR(32) NOT NULL DEFAULT 'CREATED',
		valid_from DATE NOT NULL,
		valid_to DATE,
		repetition VARCHAR(16) NOT NULL DEFAULT 'NONE',
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id),
		FOREIGN KEY (tenant_id, customer_id) REFERENCES customers (tenant_id, id) ON DELETE RESTRICT,
		FOREIGN KEY (tenant_id, container_id) REFERENCES containers (tenant_id, id) ON DELETE RESTRICT,
		CHECK (valid_to IS NULL OR valid_to >= valid_from)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_agreements_customer_id ON agreements (customer_id);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		agreement_id UUID NOT NULL,
		container_id UUID,
		car_id UUID,
		type VARCHAR(32) NOT NULL DEFAULT 'UNKNOWN',
		status job_status NOT NULL DEFAULT 'UNASSIGNED',
		date TIMESTAMPTZ NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tenant_id, id),
		FOREIGN KEY (tenant_id, agreement_id) REFERENCES agreements (tenant_id, id) ON DELETE RESTRICT,
		FOREIGN KEY (tenant_id, container_id) REFERENCES containers (tenant_id, id) ON DELETE RESTRICT,
		FOREIGN KEY (tenant_id, car_id) REFERENCES cars (tenant_id, id) ON DELETE RESTRICT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_car_id ON jobs (car_id) WHERE car_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_date ON jobs (date);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = 'containers' AND constraint_name = 'fk_containers_job'
		) THEN
			ALTER TABLE containers
				ADD CONSTRAINT fk_containers_job
				FOREIGN KEY (tenant_id, job_id) REFERENCES jobs (tenant_id, id) ON DELETE SET NULL;
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
