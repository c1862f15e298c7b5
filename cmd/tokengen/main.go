// Command tokengen mints an access token for a given user id. Handy for
// smoke-testing the API without going through /auth/register.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
)

func main() {
	var (
		userID   string
		secret   string
		validity time.Duration
	)

	flag.StringVar(&userID, "u", "", "user id to embed as the token subject")
	flag.StringVar(&secret, "s", "secretKey", "HMAC secret the server is configured with")
	flag.DurationVar(&validity, "t", 24*time.Hour, "token validity duration")
	flag.Parse()

	if userID == "" {
		log.Fatal("user id is required (-u)")
	}

	token, err := auth.GenerateToken(userID, []byte(secret), validity)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(token)
}
