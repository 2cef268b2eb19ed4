package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"dhara-backend/internal/config"
	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/repository/postgres"
	"dhara-backend/internal/security"
	"dhara-backend/internal/service"
	"dhara-backend/internal/utils"
)

type SeedAsset struct {
	Name         string  `yaml:"name"`
	Type         string  `yaml:"type"`
	Category     string  `yaml:"category"`
	Location     string  `yaml:"location"`
	PurchaseDate string  `yaml:"purchase_date"`
	Margin       float64 `yaml:"margin"`
	Available    *bool   `yaml:"available"`
}

type SeedUser struct {
	Name    string      `yaml:"name"`
	Email   string      `yaml:"email"`
	Village string      `yaml:"village"`
	Assets  []SeedAsset `yaml:"assets"`
}

type SeedData struct {
	ConfigFile string     `yaml:"config_file"`
	Password   string     `yaml:"password"`
	Farmers    []SeedUser `yaml:"farmers"`
	Operators  []SeedUser `yaml:"operators"`
}

func main() {
	dataFile := flag.String("data", "cmd/seed/seed.yaml", "Path to seed data file")
	configOverride := flag.String("config", "", "Path to configuration file (defaults to config_file in the seed data)")
	flag.Parse()

	data, err := readSeedFile(*dataFile)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	configPath := data.ConfigFile
	if *configOverride != "" {
		configPath = *configOverride
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	store := postgres.NewStore(db)
	seeder := &seeder{
		users:  store.UserRepository,
		auth:   service.NewAuthService(store.UserRepository, security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())),
		assets: service.NewAssetService(store.AssetRepository, store.MaintenanceLogRepository, nil, nil, utils.SystemClock{}, nil),
	}

	if err := seeder.run(ctx, data); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Println("Seeding finished.")
}

func readSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if data.Password == "" {
		data.Password = "password"
	}
	return &data, nil
}

type seeder struct {
	users  repository.UserRepository
	auth   service.AuthService
	assets service.AssetService
}

func (s *seeder) run(ctx context.Context, data *SeedData) error {
	for _, f := range data.Farmers {
		if _, err := s.ensureUser(ctx, f, domain.RoleFarmer, data.Password); err != nil {
			return err
		}
	}

	for _, op := range data.Operators {
		user, err := s.ensureUser(ctx, op, domain.RoleOperator, data.Password)
		if err != nil {
			return err
		}

		existing, err := s.assets.ListAssets(ctx, domain.AssetFilter{OperatorID: user.ID})
		if err != nil {
			return err
		}
		for _, a := range op.Assets {
			if hasAsset(existing, a.Name) {
				fmt.Printf("Asset already exists: %s\n", a.Name)
				continue
			}
			if err := s.createAsset(ctx, user.ID, a); err != nil {
				return fmt.Errorf("seed asset %s: %w", a.Name, err)
			}
		}
	}
	return nil
}

// ensureUser registers u or returns the existing account with the same email.
func (s *seeder) ensureUser(ctx context.Context, u SeedUser, role domain.Role, password string) (*domain.User, error) {
	email := u.Email
	if email == "" {
		email = strings.ReplaceAll(strings.ToLower(u.Name), " ", ".") + "@example.com"
	}

	user, _, err := s.auth.Register(ctx, email, password, u.Name, string(role), u.Village)
	if errors.Is(err, repository.ErrConflict) {
		fmt.Printf("Found %s: %s\n", strings.ToLower(string(role)), email)
		return s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	fmt.Printf("Created %s: %s\n", strings.ToLower(string(role)), email)
	return user, nil
}

func (s *seeder) createAsset(ctx context.Context, operatorID string, a SeedAsset) error {
	asset, err := s.assets.CreateAsset(ctx, operatorID, service.AssetInput{
		Name:         a.Name,
		Type:         a.Type,
		Category:     a.Category,
		Location:     a.Location,
		PurchaseDate: a.PurchaseDate,
		Margin:       a.Margin,
	})
	if err != nil {
		return err
	}
	if a.Available != nil && !*a.Available {
		if _, err := s.assets.UpdateAsset(ctx, operatorID, asset.ID, service.AssetPatch{Availability: a.Available}); err != nil {
			return err
		}
	}
	fmt.Printf("Created asset: %s (%d/hr)\n", asset.Name, asset.HourlyRate)
	return nil
}

func hasAsset(assets []domain.Asset, name string) bool {
	for _, a := range assets {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}
