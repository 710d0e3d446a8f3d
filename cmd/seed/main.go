// seed crea datos de demostración: un admin, un jefe con dos vendedores y algunos clientes.
// Es idempotente: lo que ya existe (mismo email o código) se deja como está.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API; SEED_PASSWORD fija la contraseña de todos los usuarios.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/postgres"
	"github.com/jhoicas/daily-report-api/pkg/config"
	"github.com/jhoicas/daily-report-api/pkg/logger"
)

type seedUser struct {
	code, name, email string
	role              entity.Role
	manager           string // email del jefe
}

var users = []seedUser{
	{"A001", "Administración", "admin@example.com", entity.RoleAdmin, ""},
	{"M001", "Laura Gómez", "laura@example.com", entity.RoleManager, ""},
	{"S001", "Pedro Ruiz", "pedro@example.com", entity.RoleMember, "laura@example.com"},
	{"S002", "Marta Díaz", "marta@example.com", entity.RoleMember, "laura@example.com"},
}

var customers = []entity.Customer{
	{CustomerCode: "C001", Name: "Ferretería Central", CompanyName: "Central S.A.S.", Phone: "6015550101"},
	{CustomerCode: "C002", Name: "Distribuidora Norte", CompanyName: "Norte Ltda.", Phone: "6045550202"},
	{CustomerCode: "C003", Name: "Almacén El Puerto", CompanyName: "El Puerto S.A.", Phone: "6055550303"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	people := postgres.NewSalesPersonRepository(pool)
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	now := time.Now()
	for _, u := range users {
		existing, err := people.GetByEmail(ctx, u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("buscar vendedor")
		}
		if existing != nil {
			log.Info().Str("email", u.email).Msg("ya existe, se omite")
			continue
		}
		sp := &entity.SalesPerson{
			EmployeeCode: u.code,
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if u.manager != "" {
			boss, err := people.GetByEmail(ctx, u.manager)
			if err != nil || boss == nil {
				log.Fatal().Err(err).Str("manager", u.manager).Msg("jefe no encontrado")
			}
			sp.ManagerID = &boss.ID
		}
		if err := people.Create(ctx, sp); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("crear vendedor")
		}
		log.Info().Str("email", u.email).Str("role", string(u.role)).Msg("vendedor creado")
	}

	clients := postgres.NewCustomerRepository(pool)
	for _, c := range customers {
		c := c
		c.CreatedAt, c.UpdatedAt = now, now
		err := clients.Create(ctx, &c)
		switch {
		case errors.Is(err, domain.ErrConflict):
			log.Info().Str("customer_code", c.CustomerCode).Msg("ya existe, se omite")
		case err != nil:
			log.Fatal().Err(err).Str("customer_code", c.CustomerCode).Msg("crear cliente")
		default:
			log.Info().Str("customer_code", c.CustomerCode).Msg("cliente creado")
		}
	}

	log.Info().Msg("seed completado")
}
