package main

import (
	"log"
	"net/http"
	"os"

	"schieber-game/internal/database"
	"schieber-game/internal/server"
)

func main() {
	log.Println("Starting Schieber server...")

	db := database.New()
	defer db.Close()

	hub := server.NewHub(&db)
	go hub.Run()

	router := server.NewRouter(hub, &db)
	router.Handle("/*", http.FileServer(http.Dir("web/static")))

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
