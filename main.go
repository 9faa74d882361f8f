package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/config"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/handlers"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/routes"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/services"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/storage"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/store"
	"github.com/sanjaikannang/Golden-Gate-BackEnd/utils"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	cache := utils.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	uploader := storage.NewCloudinaryClient(cfg.Cloudinary)
	propertyStore := store.NewPropertyStore(db.Collection("properties"))
	propertyService := services.NewPropertyService(propertyStore, uploader)

	propertyController := handlers.NewPropertyController(propertyService, cache)
	userController := handlers.NewUserController(db.Collection("users"))

	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	routes.RegisterRoutes(e, propertyController, userController)

	log.Printf("Server starting on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
