package router

import (
	"errors"
	"log"

	"github.com/buildhubhq/buildhub-backend/internal/enrichment"
	"github.com/buildhubhq/buildhub-backend/internal/handlers"
	"github.com/buildhubhq/buildhub-backend/internal/middleware"
	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/notify"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/buildhubhq/buildhub-backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Deps bundles the infrastructure shared by the route groups.
type Deps struct {
	Postgres     *gorm.DB
	Mongo        *mongo.Client
	Push         *firebase.App // nil when push is not configured
	NewsBotEmail string
}

// Repos is the fully constructed repository set, also used by the job
// scheduler in main.
type Repos struct {
	User         repositories.UserRepository
	Profile      repositories.ProfileRepository
	Follow       repositories.FollowRepository
	Post         repositories.PostRepository
	Project      repositories.ProjectRepository
	Resource     repositories.ResourceRepository
	Comment      repositories.CommentRepository
	Vote         repositories.VoteRepository
	Like         repositories.LikeRepository
	Bookmark     repositories.BookmarkRepository
	Notification repositories.NotificationRepository
	Conversation repositories.ConversationRepository
	Story        repositories.StoryRepository
	Grant        repositories.GrantRepository
}

// NewRepos wires every repository against the two databases.
func NewRepos(pgdb *gorm.DB, mgClient *mongo.Client) *Repos {
	return &Repos{
		User:         repositories.NewPostgresUserRepository(pgdb),
		Profile:      repositories.NewPostgresProfileRepository(pgdb),
		Follow:       repositories.NewPostgresFollowRepository(pgdb),
		Post:         repositories.NewMongoPostRepository(mgClient.Database("buildhub")),
		Project:      repositories.NewPostgresProjectRepository(pgdb),
		Resource:     repositories.NewPostgresResourceRepository(pgdb),
		Comment:      repositories.NewPostgresCommentRepository(pgdb),
		Vote:         repositories.NewPostgresVoteRepository(pgdb),
		Like:         repositories.NewPostgresLikeRepository(pgdb),
		Bookmark:     repositories.NewPostgresBookmarkRepository(pgdb),
		Notification: repositories.NewPostgresNotificationRepository(pgdb),
		Conversation: repositories.NewPostgresConversationRepository(pgdb),
		Story:        repositories.NewPostgresStoryRepository(pgdb),
		Grant:        repositories.NewPostgresGrantRepository(pgdb),
	}
}

// AutoMigrate runs the PostgreSQL schema migrations for all models.
func AutoMigrate(pgdb *gorm.DB) error {
	return pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Project{},
		&models.Resource{},
		&models.Comment{},
		&models.Vote{},
		&models.Like{},
		&models.Bookmark{},
		&models.Notification{},
		&models.Conversation{},
		&models.Message{},
		&models.Story{},
		&models.Grant{},
		&models.GrantSubmission{},
		&models.GrantApplication{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) *Repos {
	if err := AutoMigrate(deps.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	repos := NewRepos(deps.Postgres, deps.Mongo)
	markNewsBot(repos, deps.NewsBotEmail)

	enricher := enrichment.NewEnricher(repos.User, repos.Profile, repos.Vote, repos.Like, repos.Bookmark, repos.Comment)
	notifier := notify.NewNotifier(repos.Notification, repos.Profile, deps.Push)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// User creation stays open; everything else requires a JWT.
	open := e.Group("/api/v1")
	userHandler := handlers.NewUserHandler(repos.User, repos.Profile, repos.Follow)
	open.POST("/users", userHandler.CreateUser)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterUserRoutes(api)

	followHandler := handlers.NewFollowHandler(repos.Follow, repos.User, notifier)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(repos.Post, repos.Like, repos.Bookmark, repos.Comment, repos.Notification, enricher)
	postHandler.RegisterPostRoutes(api)

	projectHandler := handlers.NewProjectHandler(repos.Project, repos.Vote, repos.Bookmark, repos.Comment, repos.Notification, enricher)
	projectHandler.RegisterProjectRoutes(api)

	resourceHandler := handlers.NewResourceHandler(repos.Resource, repos.Vote, repos.Bookmark, repos.Comment, repos.Notification, enricher)
	resourceHandler.RegisterResourceRoutes(api)

	reactionHandler := handlers.NewReactionHandler(repos.Vote, repos.Like, repos.Bookmark, repos.Post, repos.Project, repos.Resource, repos.User, notifier)
	reactionHandler.RegisterReactionRoutes(api)

	commentHandler := handlers.NewCommentHandler(repos.Comment, repos.Post, repos.Project, repos.Resource, repos.User, enricher, notifier)
	commentHandler.RegisterCommentRoutes(api)

	feedHandler := handlers.NewFeedHandler(repos.Post, repos.Project, repos.Follow, enricher)
	feedHandler.RegisterFeedRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(repos.Notification, enricher)
	notificationHandler.RegisterNotificationRoutes(api)

	conversationHandler := handlers.NewConversationHandler(repos.Conversation, repos.User, enricher, notifier)
	conversationHandler.RegisterConversationRoutes(api)

	storyHandler := handlers.NewStoryHandler(repos.Story, repos.Follow, enricher)
	storyHandler.RegisterStoryRoutes(api)

	grantHandler := handlers.NewGrantHandler(repos.Grant, repos.Project, repos.User, enricher, notifier)
	grantHandler.RegisterGrantRoutes(api)

	log.Println("All routes configured.")
	return repos
}

// markNewsBot resolves the curation account by email, creating it on first
// boot, and flags its profile so clients can badge its content. The account
// is an ordinary user in every other respect; the external poller appends
// posts under its id.
func markNewsBot(repos *Repos, email string) {
	if email == "" {
		return
	}
	user, err := repos.User.GetUserByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		user = &models.User{Name: "BuildHub News", Email: email}
		if err := repos.User.CreateUser(user); err != nil {
			log.Printf("news bot provisioning failed: %v", err)
			return
		}
	} else if err != nil {
		log.Printf("news bot lookup failed: %v", err)
		return
	}
	profile, err := repos.Profile.EnsureProfile(user.ID)
	if err != nil {
		log.Printf("news bot profile lookup failed: %v", err)
		return
	}
	if profile.IsNewsBot {
		return
	}
	profile.IsNewsBot = true
	if err := repos.Profile.UpdateProfile(profile); err != nil {
		log.Printf("news bot profile update failed: %v", err)
	}
}
