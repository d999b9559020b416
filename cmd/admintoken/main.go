// admintoken выпускает JWT администратора для доступа к /api/admin/*.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/linemk/shop-admin/internal/config"
	security "github.com/linemk/shop-admin/internal/jwt-new"
)

func main() {
	var adminID string
	flag.StringVar(&adminID, "admin", "", "admin identifier written to the sub claim")

	_ = godotenv.Load()
	// MustLoad сам вызывает flag.Parse
	cfg := config.MustLoad()

	if adminID == "" {
		log.Fatal("-admin is required")
	}

	token, err := security.NewToken(adminID, cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Println(token)
}
