package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shopfront-be/internal/config"
	"shopfront-be/internal/db"
	"shopfront-be/internal/user"

	_ "github.com/lib/pq"
)

type seedProduct struct {
	name     string
	price    float64
	stock    int
	imageURL string
}

var catalogSeed = []seedProduct{
	{"Laptop Pro", 1200.00, 10000, "https://placehold.co/600x400/EEE/31343C?text=Laptop"},
	{"Smartphone X", 750.00, 1500, "https://placehold.co/600x400/EEE/31343C?text=Phone"},
	{"Wireless Headphones", 150.00, 300, "https://placehold.co/600x400/EEE/31343C?text=Headphones"},
	{"4K Monitor", 400.00, 800, "https://placehold.co/600x400/EEE/31343C?text=Monitor"},
	{"Mechanical Keyboard", 90.00, 200, "https://placehold.co/600x400/EEE/31343C?text=Keyboard"},
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	seed := flag.Bool("seed", false, "insert the default catalog and admin user after migrating")
	dir := flag.String("dir", "./migrations", "directory containing migration files")
	flag.Parse()

	cfg := config.LoadConfig()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer database.Close()

	if err := run(database, *mode, *dir); err != nil {
		log.Fatal(err)
	}

	if *seed && *mode == "up" {
		if err := runSeed(database); err != nil {
			log.Fatal(err)
		}
	}
}

func run(database *sql.DB, mode, migrationsDir string) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return runMigrationsUp(database, files)
	case "down":
		return runMigrationsDown(database, files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up' or 'down')", mode)
	}
}

func runMigrationsUp(database *sql.DB, files []string) error {
	for _, file := range files {
		version := filepath.Base(file)

		var exists bool
		err := database.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			fmt.Printf("skipping already applied migration: %s\n", version)
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		upSQL := extractMigrationPart(string(content), "Up")
		fmt.Printf("applying migration: %s\n", version)

		if _, err := database.Exec(upSQL); err != nil {
			return fmt.Errorf("migration failed (%s): %w", version, err)
		}

		if _, err := database.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration version: %w", err)
		}
	}
	fmt.Println("all new migrations applied.")
	return nil
}

func runMigrationsDown(database *sql.DB, files []string) error {
	var lastVersion string
	err := database.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&lastVersion)
	if err == sql.ErrNoRows {
		fmt.Println("no migrations to roll back.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	filePath := ""
	for _, f := range files {
		if filepath.Base(f) == lastVersion {
			filePath = f
			break
		}
	}
	if filePath == "" {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	downSQL := extractMigrationPart(string(content), "Down")
	fmt.Printf("rolling back migration: %s\n", lastVersion)

	if _, err := database.Exec(downSQL); err != nil {
		return fmt.Errorf("rollback failed (%s): %w", filePath, err)
	}

	if _, err := database.Exec(`DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	fmt.Println("rollback successful.")
	return nil
}

// runSeed inserts the default catalog and an admin account. Both inserts
// are conditional so re-running the command leaves existing data alone.
func runSeed(database *sql.DB) error {
	for _, p := range catalogSeed {
		_, err := database.Exec(`
			INSERT INTO products (name, price, stock, image_url)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)`,
			p.name, p.price, p.stock, p.imageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}
	fmt.Printf("seeded %d catalog products.\n", len(catalogSeed))

	adminUsername := envOr("ADMIN_USERNAME", "admin")
	adminEmail := envOr("ADMIN_EMAIL", "admin@example.com")
	adminPassword := envOr("ADMIN_PASSWORD", "password")

	hash, err := user.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = database.Exec(`
		INSERT INTO users (username, email, password_hash, is_admin)
		SELECT $1, $2, $3, TRUE
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		adminUsername, adminEmail, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	fmt.Printf("seeded admin user %q.\n", adminUsername)
	return nil
}

func extractMigrationPart(content string, section string) string {
	lines := strings.Split(content, "\n")
	var part strings.Builder
	var inPart bool

	for _, line := range lines {
		if strings.Contains(line, "-- +migrate "+section) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
