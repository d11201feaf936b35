// dbstats prints how many users the bot knows and how they split across
// risk profiles. It migrates the schema on the way in, so it also works as a
// one-shot setup step for a fresh database.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/web3guy0/poolbot/internal/config"
	"github.com/web3guy0/poolbot/internal/database"
)

func main() {
	_ = godotenv.Load()

	path := config.DatabasePath()

	fmt.Println("🔌 Connecting to database...")
	db, err := database.New(path)
	if err != nil {
		fmt.Printf("❌ Connection error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("✅ Database connected and migrated!")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := db.CountUsers(ctx)
	if err != nil {
		fmt.Printf("❌ Query error: %v\n", err)
		os.Exit(1)
	}

	byProfile, err := db.CountByRiskProfile(ctx)
	if err != nil {
		fmt.Printf("❌ Query error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n👥 Users: %d\n", total)

	fmt.Println("\n📊 By risk profile:")
	if len(byProfile) == 0 {
		fmt.Println("  (no users yet)")
		return
	}
	profiles := make([]string, 0, len(byProfile))
	for p := range byProfile {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)
	for _, p := range profiles {
		fmt.Printf("  - %s: %d\n", p, byProfile[p])
	}
}
