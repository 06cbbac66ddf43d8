// hashgen prints a bcrypt hash for a moderator password, ready to paste
// into the semicolon-delimited MOD_PASSWORD_HASHES list.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost factor (verification at cost 12 takes roughly 100ms)")
	check := flag.String("check", "", "verify the password against this existing hash instead of generating one")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal("Failed to read password:", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		log.Fatal("Empty password")
	}

	if *check != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*check), []byte(password)); err != nil {
			log.Fatal("Password does not match hash")
		}
		fmt.Println("OK")
		return
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	fmt.Println(string(hash))
	fmt.Fprintf(os.Stderr, "cost=%d took=%v\n", *cost, time.Since(start))
}
