package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/campusgigs/campusgigs-api/docs"
	v1 "github.com/campusgigs/campusgigs-api/internal/api/handler/v1"
	"github.com/campusgigs/campusgigs-api/internal/api/middleware"
	"github.com/campusgigs/campusgigs-api/internal/config"
	"github.com/campusgigs/campusgigs-api/internal/event"
	"github.com/campusgigs/campusgigs-api/internal/realtime"
	"github.com/campusgigs/campusgigs-api/internal/repository"
	"github.com/campusgigs/campusgigs-api/internal/repository/dao"
	"github.com/campusgigs/campusgigs-api/internal/service"
	"github.com/campusgigs/campusgigs-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store  *storage.DiskStore
	hub    *realtime.Hub
	events *event.Publisher
}

func NewServer(conf *config.AppConfig, db *gorm.DB, store *storage.DiskStore, hub *realtime.Hub, events *event.Publisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  store,
		hub:    hub,
		events: events,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	gigHandler := s.initGigHandler(db)
	orderHandler := s.initOrderHandler(db)
	chatHandler := s.initChatHandler(db)
	fileHandler := v1.NewFileHandler(store)
	s.MountHandlers(authHandler, userHandler, gigHandler, orderHandler, chatHandler, fileHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	svc := s.initUserService(db)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initGigHandler(db *gorm.DB) *v1.GigHandler {
	gigDAO := dao.NewGigDAO(db)
	repo := repository.NewGigRepository(gigDAO)
	svc := service.NewGigService(repo)
	handler := v1.NewGigHandler(svc, s.initUserService(db))

	return handler
}

func (s *Server) initOrderHandler(db *gorm.DB) *v1.OrderHandler {
	orderDAO := dao.NewOrderDAO(db)
	repo := repository.NewOrderRepository(orderDAO)
	gigRepo := repository.NewGigRepository(dao.NewGigDAO(db))
	svc := service.NewOrderService(repo, gigRepo, s.events)
	handler := v1.NewOrderHandler(svc, s.initUserService(db))

	return handler
}

func (s *Server) initChatHandler(db *gorm.DB) *v1.ChatHandler {
	chatDAO := dao.NewChatDAO(db)
	repo := repository.NewChatRepository(chatDAO)
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewChatService(repo, orderRepo, userRepo, s.store, s.hub, s.events)
	handler := v1.NewChatHandler(svc, s.initUserService(db))

	return handler
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	gigRepo := repository.NewGigRepository(dao.NewGigDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))

	return service.NewUserService(userRepo, gigRepo, orderRepo, s.store)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	gigHandler *v1.GigHandler,
	orderHandler *v1.OrderHandler,
	chatHandler *v1.ChatHandler,
	fileHandler *v1.FileHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)
		authenticated.GET("/users/:userID/gigs", gigHandler.HandleGetUserGigs)
		authenticated.GET("/users/:userID/stats", userHandler.HandleGetFreelancerStats)
		authenticated.GET("/users/:userID/reviews", userHandler.HandleGetFreelancerReviews)

		authenticated.PATCH("/profiles/me", userHandler.HandleUpdateProfile)
		authenticated.POST("/profiles/me/avatar", userHandler.HandleUploadAvatar)
		authenticated.POST("/profiles/me/portfolio", userHandler.HandleAddPortfolioItem)
		authenticated.DELETE("/profiles/me/portfolio/:itemID", userHandler.HandleRemovePortfolioItem)

		authenticated.GET("/gigs", gigHandler.HandleListGigs)
		authenticated.GET("/gigs/:gigID", gigHandler.HandleGetGig)
		authenticated.POST("/gigs", gigHandler.HandleCreateGig)

		authenticated.POST("/orders", orderHandler.HandleCreateOrder)
		authenticated.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		authenticated.PATCH("/orders/:orderID/status", orderHandler.HandleUpdateOrderStatus)
		authenticated.GET("/orders/:orderID/chat", chatHandler.HandleGetOrCreateChat)

		authenticated.GET("/chats", chatHandler.HandleListChats)
		authenticated.GET("/chats/:chatID/messages", chatHandler.HandleGetMessages)
		authenticated.POST("/chats/:chatID/messages", chatHandler.HandleSendMessage)
		authenticated.POST("/chats/:chatID/read", chatHandler.HandleMarkRead)
		authenticated.GET("/chats/:chatID/ws", chatHandler.HandleChatWebSocket)
	}

	s.Router.GET("/files/:bucket/*path", fileHandler.HandleServeFile)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "CampusGigs API"
	docs.SwaggerInfo.Description = "Student freelance marketplace with order-scoped chat."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
