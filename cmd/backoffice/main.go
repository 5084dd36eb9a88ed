package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/corretora/backoffice/internal/app"
	"github.com/corretora/backoffice/internal/auth"
	"github.com/corretora/backoffice/internal/config"
	"github.com/corretora/backoffice/internal/db"
	"github.com/corretora/backoffice/internal/fiscal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	ctx := context.Background()
	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "token":
		if err := runToken(args); err != nil {
			log.Fatal().Err(err).Msg("falha ao gerar token")
		}
	case "placa":
		if err := runPlaca(ctx, args); err != nil {
			log.Fatal().Err(err).Msg("falha ao consultar placa")
		}
	case "documento":
		if err := runDocumento(args); err != nil {
			log.Fatal().Err(err).Msg("documento inválido")
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "backoffice CLI")
	fmt.Fprintln(os.Stderr, "uso:")
	fmt.Fprintln(os.Stderr, "  backoffice token --subject <usuario> [--roles CORRETOR,ADMIN] [--ttl 1h]")
	fmt.Fprintln(os.Stderr, "  backoffice placa --owner <usuario> ABC1D23")
	fmt.Fprintln(os.Stderr, "  backoffice documento --tipo cnpj 11.222.333/0001-81")
}

func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		subject = fs.String("subject", "", "identidade do usuário (sub)")
		roles   = fs.String("roles", "", "papéis separados por vírgula")
		ttl     = fs.Duration("ttl", time.Hour, "validade do token")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if len(secret) < 32 {
		return errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	var roleList []string
	for _, role := range strings.Split(*roles, ",") {
		if role = strings.ToUpper(strings.TrimSpace(role)); role != "" {
			roleList = append(roleList, role)
		}
	}

	token, _, err := auth.NewJWTManager(secret, *ttl).GenerateAccessToken(*subject, roleList)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runPlaca(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("placa", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	owner := fs.String("owner", "", "identidade dona do cache")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("informe uma placa")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	service := app.NewVehicleService(cfg, pool, redisClient, log.Logger)
	resultado, err := service.LookupPlate(ctx, fs.Arg(0), *owner)
	if err != nil {
		return err
	}
	if resultado == nil {
		fmt.Println("veículo não encontrado")
		return nil
	}

	encoded, _ := json.MarshalIndent(resultado, "", "  ")
	fmt.Println(string(encoded))
	return nil
}

func runDocumento(args []string) error {
	fs := flag.NewFlagSet("documento", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	tipo := fs.String("tipo", fiscal.TipoCPF, "cpf ou cnpj")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("informe o número do documento")
	}

	formatado, err := fiscal.FormatDocument(*tipo, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := fiscal.ValidateDocument(*tipo, fs.Arg(0)); err != nil {
		return fmt.Errorf("%s: %w", formatado, err)
	}

	fmt.Println(formatado)
	return nil
}
