package main

import (
	"context"
	"log"
	"os"

	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	log.Println("Seeding demo user...")
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: demoUser.Username})
	if err != nil {
		log.Fatalf("Error: lookup demo user: %v", err)
	}
	if user == nil {
		user = &demoUser
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			log.Fatalf("Error: create demo user: %v", err)
		}
		log.Printf("Created user: %s (%s)", user.Username, user.Id)
	} else {
		log.Printf("User '%s' already exists, skipping...", user.Username)
	}

	log.Println("Seeding product catalog...")
	count, err := uow.ProductRepository().Count(ctx)
	if err != nil {
		log.Fatalf("Error: count products: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d products, skipping...", count)
	} else {
		for i := range catalog {
			p := catalog[i]
			if err := uow.ProductRepository().Create(ctx, &p); err != nil {
				log.Printf("Error creating product '%s': %v", p.Name, err)
				continue
			}
			log.Printf("Created product: %s (%s)", p.Name, p.Id)
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": user.Id.String()})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			log.Fatalf("Error: sign demo token: %v", err)
		}
		log.Printf("Demo token (x-auth-token): %s", signed)
	}

	log.Println("Seeding completed!")
}

var demoUser = entity.User{
	Username: "demo",
	Email:    "demo@example.com",
	Preferences: entity.UserPreferences{
		Size:            "M",
		FavoriteColors:  []string{"đen", "trắng"},
		PreferredStyles: []string{"casual"},
	},
}

var catalog = []entity.Product{
	{
		Name: "Áo sơ mi trắng công sở", Category: entity.CategoryTops, SubCategory: "shirt", Gender: "women",
		Description: "Áo sơ mi cotton form suông, phù hợp đi làm.", Price: 450000,
		Sizes: []string{"S", "M", "L"}, Colors: []string{"trắng"}, Material: "cotton",
		Occasions: []string{"work", "formal"}, Styles: []string{"formal"}, InStock: true,
	},
	{
		Name: "Áo thun basic đen", Category: entity.CategoryTops, SubCategory: "t-shirt", Gender: "unisex",
		Description: "Áo thun cổ tròn 100% cotton.", Price: 199000,
		Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"đen", "trắng", "xám"}, Material: "cotton",
		Occasions: []string{"casual"}, Styles: []string{"casual"}, InStock: true,
	},
	{
		Name: "Quần jean ống đứng", Category: entity.CategoryBottoms, SubCategory: "jeans", Gender: "men",
		Description: "Quần jean xanh đậm, ống đứng.", Price: 590000,
		Sizes: []string{"29", "30", "31", "32"}, Colors: []string{"xanh"}, Material: "denim",
		Occasions: []string{"casual"}, Styles: []string{"casual"}, InStock: true,
	},
	{
		Name: "Váy maxi hoa nhí", Category: entity.CategoryDresses, SubCategory: "maxi", Gender: "women",
		Description: "Váy maxi voan nhẹ, hợp đi biển.", Price: 750000,
		Sizes: []string{"S", "M", "L"}, Colors: []string{"vàng", "hồng"}, Material: "voan",
		Occasions: []string{"beach", "casual"}, Styles: []string{"casual"}, InStock: true,
	},
	{
		Name: "Đầm dạ tiệc đen", Category: entity.CategoryDresses, SubCategory: "evening", Gender: "women",
		Description: "Đầm ôm dáng, cổ vuông.", Price: 1450000,
		Sizes: []string{"S", "M"}, Colors: []string{"đen", "đỏ"}, Material: "lụa",
		Occasions: []string{"party", "formal"}, Styles: []string{"formal"}, InStock: true,
	},
	{
		Name: "Áo khoác gió thể thao", Category: entity.CategoryOuterwear, SubCategory: "windbreaker", Gender: "unisex",
		Description: "Áo khoác gió chống nước nhẹ.", Price: 520000,
		Sizes: []string{"M", "L", "XL"}, Colors: []string{"đen", "xanh"}, Material: "polyester",
		Occasions: []string{"sports", "casual"}, Styles: []string{"sport"}, InStock: true,
	},
	{
		Name: "Giày sneaker trắng", Category: entity.CategoryShoes, SubCategory: "sneaker", Gender: "unisex",
		Description: "Sneaker da tổng hợp đế cao su.", Price: 890000,
		Sizes: []string{"38", "39", "40", "41", "42"}, Colors: []string{"trắng"}, Material: "da",
		Occasions: []string{"casual", "sports"}, Styles: []string{"casual", "sport"}, InStock: true,
	},
	{
		Name: "Túi tote canvas", Category: entity.CategoryAccessories, SubCategory: "bag", Gender: "women",
		Description: "Túi vải canvas khổ lớn.", Price: 150000,
		Sizes: []string{}, Colors: []string{"be"}, Material: "canvas",
		Occasions: []string{"casual", "work"}, Styles: []string{"casual"}, InStock: false,
	},
}
