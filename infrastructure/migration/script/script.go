package main

import (
	"context"
	"log"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/database/postgres"
	"github.com/MarcioBJunior/mlabs-collector/infrastructure/migration"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
)

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("ERRO: DATABASE_URL não configurada")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()
	if err := migration.Migrate(ctx, conn); err != nil {
		log.Fatalf("ERRO na migração: %v", err)
	}

	log.Printf("Migração concluída em %v", time.Since(startTime))
}
