package config

import (
	"os"
	"time"

	"foodgram/internal/api/handlers"
	"foodgram/internal/api/presenters"
	"foodgram/internal/api/routes"
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/membership"
	"foodgram/pkg/notification"
	"foodgram/pkg/personalization"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"
	"foodgram/pkg/subscription"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const localMediaDir = "./media"

func NewApp(db *gorm.DB, rdb *redis.Client, publisher notification.Publisher) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: presenters.ErrorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     file,
	}))
	app.Use(metrics.Middleware())
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 20),
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		logging.Warn().Err(err).Str("dir", localMediaDir).Msg("falling back to local media storage")
		s3 = storage.NewLocalStorage(localMediaDir, utils.GetConfig("APP_URL")+"/media")
		app.Static("/media", localMediaDir)
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	sqlxDB, err := SQLX(db)
	if err != nil {
		return nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	membershipRepository := membership.NewMembershipRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(sqlxDB)

	// Service
	jwtService := jwt.NewJWTService(jwt.NewRedisTokenBlacklist(rdb))
	resolver := personalization.NewResolver(membershipRepository, subscriptionRepository)
	userService := user.NewUserService(userRepository, jwtService, resolver, mailer, utils.GetConfig("APP_URL"))
	tagService := tag.NewTagService(tagRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository, tagRepository, resolver, s3, publisher)
	membershipService := membership.NewMembershipService(membershipRepository, recipeRepository)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository, userRepository, recipeRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository, utils.GetConfig("SHOPPING_LIST_FILENAME"))

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	tagHandler := handlers.NewTagHandler(tagService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, membershipService, shoppingService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		TagHandler:          tagHandler,
		IngredientHandler:   ingredientHandler,
		RecipeHandler:       recipeHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
