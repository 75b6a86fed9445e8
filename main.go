package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/snehamhatre1409-sys/Health-Management-System/api"
	"github.com/snehamhatre1409-sys/Health-Management-System/data"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Ensure it exists.")
	}

	data.InitDatabase()

	router := api.NewRouter()
	router.SetupAndRunApiServer()
}
