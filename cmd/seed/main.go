// seed aplica el schema del checkout y carga datos iniciales: catálogo de
// productos de muestra y un usuario admin si las credenciales vienen por env.
//
// Uso: go run ./cmd/seed
// Env: las mismas variables de conexión del API (DATABASE_URL o DB_*),
// más SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD para el usuario admin.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/internal/infrastructure/postgres"
	"github.com/jhoicas/checkout-api/pkg/config"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar schema")
	}
	log.Info().Msg("schema aplicado")

	productRepo := postgres.NewProductRepository(pool)
	total, err := productRepo.CountAll()
	if err != nil {
		log.Fatal().Err(err).Msg("contar productos")
	}
	if total == 0 {
		for _, p := range sampleProducts() {
			if err := productRepo.Create(p); err != nil {
				log.Fatal().Err(err).Str("product", p.Name).Msg("insertar producto")
			}
		}
		log.Info().Int("count", len(sampleProducts())).Msg("catálogo de muestra cargado")
	} else {
		log.Info().Int("count", total).Msg("catálogo ya poblado, se omite el seed de productos")
	}

	ensureAdmin(log, postgres.NewUserRepository(pool))
}

func sampleProducts() []*entity.Product {
	now := time.Now()
	mk := func(name, description string, price, baseFee int64, stock int, imageURL string) *entity.Product {
		return &entity.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Price:       decimal.NewFromInt(price),
			Stock:       stock,
			BaseFee:     decimal.NewFromInt(baseFee),
			ImageURL:    imageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	return []*entity.Product{
		mk("Audífonos inalámbricos", "Audífonos bluetooth con cancelación de ruido", 350000, 9000, 25,
			"https://images.example.com/products/headphones.jpg"),
		mk("Teclado mecánico", "Teclado mecánico switches rojos, layout español", 280000, 9000, 40,
			"https://images.example.com/products/keyboard.jpg"),
		mk("Monitor 27\"", "Monitor IPS 27 pulgadas 2K 75Hz", 1150000, 15000, 12,
			"https://images.example.com/products/monitor.jpg"),
		mk("Mouse ergonómico", "Mouse vertical inalámbrico recargable", 145000, 6000, 60,
			"https://images.example.com/products/mouse.jpg"),
		mk("Base refrigerante", "Base para portátil con doble ventilador", 90000, 6000, 0,
			"https://images.example.com/products/cooler.jpg"),
	}
}

// ensureAdmin crea el usuario admin inicial (idempotente).
func ensureAdmin(log *logger.Logger, users repository.UserRepository) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no definidos, se omite el usuario admin")
		return
	}

	existing, err := users.GetByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("usuario admin ya existe")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", email).Msg("usuario admin creado")
}
