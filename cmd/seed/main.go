package main

import (
	"log"
	"os"

	"whatsapp-storefront-be/internal/model"
	"whatsapp-storefront-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds a demo store with a small clothing catalog so the chat flow can
// be exercised end to end right after migration.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	phoneNumberId := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	if phoneNumberId == "" {
		phoneNumberId = "000000000000000"
		log.Println("Warn: WHATSAPP_PHONE_NUMBER_ID not set, using placeholder")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	company := model.Company{
		Id:                    uuid.New(),
		Name:                  "Loja Demo",
		WhatsappPhoneNumberId: phoneNumberId,
		Address:               "Rua Exemplo, 123",
		BusinessHours:         "09h às 18h, segunda a sábado",
		PaymentMethods:        datatypes.NewJSONSlice([]string{"Pix", "Cartão"}),
	}

	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("Error: Failed to seed company: %v", err)
	}

	products := []model.Product{
		{Id: uuid.New(), CompanyId: company.Id, Name: "Calça Jeans Slim", Description: "Jeans azul escuro, corte slim", Price: 129.9, Stock: 12, Category: "Calças", Subcategory: "Jeans", Available: true},
		{Id: uuid.New(), CompanyId: company.Id, Name: "Calça Moletom Cinza", Description: "Moletom felpado, cós com cordão", Price: 99.9, Stock: 8, Category: "Calças", Subcategory: "Moletom", Available: true},
		{Id: uuid.New(), CompanyId: company.Id, Name: "Camiseta Básica Branca", Description: "Algodão penteado, gola redonda", Price: 59.9, Stock: 20, Category: "Camisetas", Available: true},
		{Id: uuid.New(), CompanyId: company.Id, Name: "Camiseta Estampada", Description: "Estampa exclusiva, malha leve", Price: 69.9, Stock: 15, Category: "Camisetas", Available: true},
		{Id: uuid.New(), CompanyId: company.Id, Name: "Vestido Floral", Description: "Tecido leve, estampa floral", Price: 159.9, Stock: 6, Category: "Vestidos", Available: true},
		{Id: uuid.New(), CompanyId: company.Id, Name: "Boné Aba Reta", Description: "Ajuste traseiro, bordado frontal", Price: 39.9, Stock: 5, Category: "Acessórios", Available: true},
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed product %q: %v", products[i].Name, err)
		}
	}

	log.Printf("✅ Seed done: company %s with %d products", company.Id, len(products))
}
