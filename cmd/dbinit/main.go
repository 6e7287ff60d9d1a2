// dbinit crea el esquema de la base de datos y siembra el usuario admin
// inicial si no existe.
//
// Uso: go run ./cmd/dbinit
// Lee la misma configuración que el servidor (env vars / .env).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pcbstock-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS components (
	id UUID PRIMARY KEY,
	component_name TEXT NOT NULL,
	part_number TEXT NOT NULL UNIQUE,
	current_stock INT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
	monthly_required_quantity INT NOT NULL DEFAULT 0 CHECK (monthly_required_quantity >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pcbs (
	id UUID PRIMARY KEY,
	pcb_name TEXT NOT NULL,
	pcb_code TEXT NOT NULL UNIQUE,
	description TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pcb_components (
	id UUID PRIMARY KEY,
	pcb_id UUID NOT NULL REFERENCES pcbs(id) ON DELETE CASCADE,
	component_id UUID NOT NULL REFERENCES components(id),
	quantity_per_pcb INT NOT NULL CHECK (quantity_per_pcb > 0),
	alternative_component_id UUID REFERENCES components(id),
	UNIQUE (pcb_id, component_id)
);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'operator',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS production_entries (
	id UUID PRIMARY KEY,
	pcb_id UUID NOT NULL REFERENCES pcbs(id),
	quantity_produced INT NOT NULL CHECK (quantity_produced > 0),
	produced_by UUID REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS consumption_history (
	id UUID PRIMARY KEY,
	production_entry_id UUID NOT NULL REFERENCES production_entries(id),
	component_id UUID NOT NULL REFERENCES components(id),
	quantity_consumed INT NOT NULL CHECK (quantity_consumed > 0),
	stock_before INT NOT NULL,
	stock_after INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_consumption_component ON consumption_history(component_id);
CREATE INDEX IF NOT EXISTS idx_consumption_entry ON consumption_history(production_entry_id);

CREATE TABLE IF NOT EXISTS procurement_triggers (
	id UUID PRIMARY KEY,
	component_id UUID NOT NULL REFERENCES components(id),
	current_stock INT NOT NULL,
	monthly_required_quantity INT NOT NULL,
	threshold INT NOT NULL,
	status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'RESOLVED')),
	po_reference TEXT,
	stock_at_resolution INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	resolved_at TIMESTAMPTZ
);

-- A lo sumo un disparador PENDING por componente
CREATE UNIQUE INDEX IF NOT EXISTS idx_trigger_pending_component
	ON procurement_triggers(component_id) WHERE status = 'PENDING';

CREATE TABLE IF NOT EXISTS procurement_outbox (
	id UUID PRIMARY KEY,
	component_id UUID NOT NULL REFERENCES components(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	processed_at TIMESTAMPTZ,
	attempts INT NOT NULL DEFAULT 0,
	last_error TEXT
);

CREATE INDEX IF NOT EXISTS idx_outbox_pending
	ON procurement_outbox(created_at) WHERE processed_at IS NULL;
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "aplicar esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("esquema aplicado")

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		fmt.Println("ADMIN_PASSWORD no definido, se omite el usuario admin")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}
	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, 'admin', $2, 'admin', $3)
		ON CONFLICT (username) DO NOTHING`,
		uuid.New().String(), string(hash), time.Now(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sembrar admin: %v\n", err)
		os.Exit(1)
	}
	if tag.RowsAffected() > 0 {
		fmt.Println("usuario admin creado")
	} else {
		fmt.Println("usuario admin ya existe")
	}
}
