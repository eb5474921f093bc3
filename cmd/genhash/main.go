// Command genhash prints the bcrypt hash of a bot token for
// DISCORD_BOT_TOKEN_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var token string
	if len(os.Args) > 1 {
		token = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "usage: genhash <token>  (or pipe the token on stdin)")
			os.Exit(2)
		}
		token = strings.TrimSpace(line)
	}

	if token == "" {
		fmt.Fprintln(os.Stderr, "token must not be empty")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash token:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
