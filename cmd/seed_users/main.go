// seed_users crea los usuarios iniciales del panel (bcrypt) en la tabla users.
//
// Uso: go run ./cmd/seed_users [ruta/usuarios.json]
// El JSON es una lista de objetos {username, password, name, role, avatar}.
// Sin archivo crea admin y supervisor con SEED_ADMIN_PASSWORD y SEED_SUPERVISOR_PASSWORD.
// Los usuarios que ya existen se omiten.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/techinventory-api/internal/application/auth"
	"github.com/jhoicas/techinventory-api/internal/application/dto"
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/techinventory-api/pkg/config"
)

func main() {
	users, err := loadUsers(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usuarios: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewUserRepository(pool)
	var created, skipped int
	for _, in := range users {
		u, err := auth.NewUser(in, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Usuario %q: %v\n", in.Username, err)
			os.Exit(1)
		}
		if err := repo.Create(ctx, u); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				fmt.Printf("  %s ya existe, se omite\n", u.Username)
				continue
			}
			fmt.Fprintf(os.Stderr, "Crear %q: %v\n", u.Username, err)
			os.Exit(1)
		}
		created++
		fmt.Printf("  %s (%s) creado\n", u.Username, u.Role)
	}

	fmt.Printf("Usuarios: %d creados, %d omitidos\n", created, skipped)
}

func loadUsers(args []string) ([]dto.CreateUserRequest, error) {
	if len(args) > 0 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		var users []dto.CreateUserRequest
		if err := json.Unmarshal(b, &users); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", args[0], err)
		}
		return users, nil
	}

	adminPwd := os.Getenv("SEED_ADMIN_PASSWORD")
	supervisorPwd := os.Getenv("SEED_SUPERVISOR_PASSWORD")
	if adminPwd == "" || supervisorPwd == "" {
		return nil, errors.New("definir SEED_ADMIN_PASSWORD y SEED_SUPERVISOR_PASSWORD o pasar un archivo JSON")
	}
	return []dto.CreateUserRequest{
		{Username: "admin", Password: adminPwd, Name: "Administrador Principal", Role: entity.RoleAdmin, Avatar: "👑"},
		{Username: "supervisor", Password: supervisorPwd, Name: "Supervisor de Inventario", Role: entity.RoleSupervisor, Avatar: "🧑‍💼"},
	}, nil
}
