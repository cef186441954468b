package main

import (
	"fmt"
	"log"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/config"
	"campusnet/pkg/database"
	"campusnet/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	testUsers := []struct {
		email      string
		username   string
		fullName   string
		university string
		role       entity.UserRole
	}{
		{"alice@campus.test", "alice", "Alice Adler", "State University", entity.RoleStudent},
		{"bob@campus.test", "bob", "Bob Berger", "State University", entity.RoleStudent},
		{"carol@campus.test", "carol", "Carol Chen", "Tech Institute", entity.RoleStudent},
		{"dave@campus.test", "dave", "Dave Duric", "Tech Institute", entity.RoleModerator},
		{"admin@campus.test", "admin", "Site Admin", "", entity.RoleAdmin},
	}

	users := make([]*entity.User, 0, len(testUsers))
	for _, tu := range testUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &entity.User{
			Email:      tu.email,
			Username:   tu.username,
			Password:   string(hashed),
			FullName:   tu.fullName,
			University: tu.university,
			Role:       tu.role,
		}
		if err := userRepo.Create(user); err != nil {
			logg.Warn("Skipping user %s: %v", tu.username, err)
			continue
		}
		users = append(users, user)
		logg.Info("Created user %s (%s)", user.Username, user.ID)
	}

	if len(users) < 3 {
		log.Fatal("Not enough seeded users to build a social graph")
	}

	// Everyone follows alice, alice follows bob
	for _, u := range users[1:] {
		if err := userRepo.CreateFollow(u.ID, users[0].ID); err != nil {
			logg.Warn("Failed to create follow: %v", err)
		}
	}
	if err := userRepo.CreateFollow(users[0].ID, users[1].ID); err != nil {
		logg.Warn("Failed to create follow: %v", err)
	}

	posts := []*entity.Post{
		{
			AuthorID:    users[0].ID,
			ContentType: entity.ContentTypeText,
			Text:        "First day back on campus, the library coffee is still terrible.",
		},
		{
			AuthorID:    users[1].ID,
			ContentType: entity.ContentTypeImage,
			ImageURLs: []string{
				"https://cdn.campus.test/photos/quad-autumn.jpg",
				"https://cdn.campus.test/photos/lecture-hall.png",
			},
		},
		{
			AuthorID:    users[2].ID,
			ContentType: entity.ContentTypeVideo,
			VideoURL:    "https://cdn.campus.test/videos/robotics-demo.mp4",
		},
	}
	for _, p := range posts {
		if err := postRepo.Create(p); err != nil {
			logg.Warn("Failed to create post: %v", err)
			continue
		}
		logg.Info("Created %s post %s", p.ContentType, p.ID)
	}

	if len(posts) > 0 {
		if err := postRepo.CreateLike(users[1].ID, posts[0].ID); err != nil {
			logg.Warn("Failed to like post: %v", err)
		}
		comment := &entity.Comment{
			PostID:   posts[0].ID,
			AuthorID: users[2].ID,
			Text:     "The vending machine one is worse, trust me.",
		}
		if err := postRepo.CreateComment(comment); err != nil {
			logg.Warn("Failed to comment: %v", err)
		}

		likes, _ := postRepo.LikeCount(posts[0].ID)
		comments, _ := postRepo.CommentCount(posts[0].ID)
		if err := postRepo.UpdateCounts(posts[0].ID, likes, comments); err != nil {
			logg.Warn("Failed to resync counters: %v", err)
		}
	}

	fmt.Println("Database seeded successfully!")
}
