package main

import (
	"context"
	"flag"
	"log"

	"financeqa/internal/auth"
	"financeqa/internal/cache"
	"financeqa/internal/config"
	"financeqa/internal/db"
	"financeqa/internal/repository"
	"financeqa/internal/service"
)

func main() {
	sweep := flag.Bool("sweep", false, "remove comments and reactions orphaned by deleted posts")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatalf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(cacheClient))
	userService := service.NewUserService(userRepo, cacheClient)
	ctx := context.Background()

	admin, created, err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	// the cached profile may still carry the old role
	userService.Invalidate(ctx, admin.ID)
	if created {
		log.Printf("Created admin account %s (%s)", admin.Email, admin.ID)
	} else {
		log.Printf("Admin account %s (%s) is in place", admin.Email, admin.ID)
	}

	if *sweep {
		commentService := service.NewCommentService(
			repository.NewCommentRepository(gormDB),
			repository.NewPostRepository(gormDB),
		)
		result, err := commentService.SweepOrphans(ctx, auth.Identity{UserID: admin.ID, Role: admin.Role})
		if err != nil {
			log.Fatalf("Failed to sweep orphans: %v", err)
		}
		log.Printf("Sweep completed successfully!")
		log.Printf("  - Orphan comments removed: %d", result.Comments)
		log.Printf("  - Orphan comment reactions removed: %d", result.CommentReactions)
		log.Printf("  - Orphan post reactions removed: %d", result.PostReactions)
	}

	log.Printf("Seed completed successfully!")
}
