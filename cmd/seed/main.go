// Command seed wipes the produtos table and loads a fixed catalog, giving
// local runs something to list, search and aggregate right away.
package main

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"estoque/internal/models"
	"estoque/internal/repositories"
)

func main() {
	viper.SetDefault("SQLITE_PATH", "estoque.db")
	viper.AutomaticEnv()

	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Produto{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Start seeding...")
	if err := db.Exec("DELETE FROM produtos").Error; err != nil {
		log.Fatalf("Failed to clear produtos: %v", err)
	}

	repo := repositories.NewGORMProdutoRepository(db)
	for _, produto := range seedProdutos() {
		if err := repo.Create(&produto); err != nil {
			log.Fatalf("Failed to create produto %q: %v", produto.Nome, err)
		}
		log.Printf("Created produto with id: %d", produto.ID)
	}
	log.Println("Seeding finished.")
}

func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

func seedProdutos() []models.Produto {
	return []models.Produto{
		// HARDWARE
		produto("Processador Core i7 13700K", "Processador de alta performance para jogos e produtividade.", "1850.00", 25, models.CategoriaHardware, true),
		produto("Placa de Vídeo RTX 4060 8GB", "GPU de última geração com suporte a DLSS 3.", "2500.00", 15, models.CategoriaHardware, true),
		produto("Memória RAM DDR5 16GB 5200MHz", "Módulo de memória RAM de alta velocidade.", "550.00", 60, models.CategoriaHardware, true),
		produto("SSD NVMe 2TB Gen4", "Armazenamento ultra-rápido para sistema e jogos.", "950.00", 45, models.CategoriaHardware, true),
		produto("Fonte 750W 80 Plus Gold Modular", "Fonte de alimentação confiável e eficiente.", "620.00", 35, models.CategoriaHardware, true),

		// SOFTWARE
		produto("Licença Windows 11 Pro", "Sistema operacional Microsoft Windows 11 Professional.", "850.00", 150, models.CategoriaSoftware, true),
		produto("Pacote Office 365 Personal (1 Ano)", "Assinatura anual para Word, Excel, PowerPoint e mais.", "299.00", 300, models.CategoriaSoftware, true),
		produto("Software de Edição de Vídeo Pro X", "Licença vitalícia para editor de vídeo profissional.", "1250.00", 80, models.CategoriaSoftware, true),

		// ACESSORIOS
		produto("Mousepad Gamer Extra Grande", "Superfície de tecido para controle e velocidade.", "120.00", 80, models.CategoriaAcessorios, true),
		produto("Headset Gamer 7.1 Surround Sem Fio", "Áudio imersivo e microfone com cancelamento de ruído.", "680.00", 40, models.CategoriaAcessorios, true),
		produto("Teclado Mecânico RGB ABNT2", "Teclado com switches Brown para digitação e jogos.", "510.00", 38, models.CategoriaAcessorios, true),

		// SERVICOS
		produto("Instalação e Configuração de PC Gamer", "Montagem completa, instalação de SO e drivers.", "300.00", 999, models.CategoriaServicos, true),
		produto("Limpeza e Troca de Pasta Térmica", "Serviço de manutenção para notebooks e desktops.", "180.00", 999, models.CategoriaServicos, true),

		// OUTROS
		produto("Cadeira Gamer Ergonômica Profissional", "Cadeira com suporte lombar e braços 4D.", "1300.00", 30, models.CategoriaOutros, true),
		produto("Mochila para Notebook até 15.6\"", "Mochila reforçada e à prova d'água.", "250.00", 70, models.CategoriaOutros, false),
	}
}

func produto(nome, descricao, preco string, estoque int, categoria models.Categoria, ativo bool) models.Produto {
	return models.Produto{
		Nome:      nome,
		Descricao: &descricao,
		Preco:     decimal.RequireFromString(preco),
		Estoque:   estoque,
		Categoria: categoria,
		Ativo:     ativo,
	}
}
