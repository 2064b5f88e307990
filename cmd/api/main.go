package main

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/rugue/FullStackEcommerce/internal/config"
	"github.com/rugue/FullStackEcommerce/internal/domain/model"
	"github.com/rugue/FullStackEcommerce/internal/handler"
	"github.com/rugue/FullStackEcommerce/internal/infra/db"
	infraRepo "github.com/rugue/FullStackEcommerce/internal/infra/repository"
	"github.com/rugue/FullStackEcommerce/internal/metrics"
	"github.com/rugue/FullStackEcommerce/internal/server"
	"github.com/rugue/FullStackEcommerce/internal/usecase"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .env is optional outside dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	if cfg.GoEnv == "prod" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	logger := log.WithField("service", "ecommerce-api")

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.WithError(err).Fatal("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	orderMetrics := metrics.NewOrderMetrics()

	authUC := usecase.NewAuthUsecase(userRepo, issuer, logger.WithField("component", "auth-usecase"))
	productUC := usecase.NewProductUsecase(productRepo, logger.WithField("component", "product-usecase"))
	orderUC := usecase.NewOrderUsecase(txManager, logger.WithField("component", "order-usecase"), orderMetrics, cfg.OrderOwnershipCheck)

	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)

	e := server.New(cfg, logger, authH, productH, orderH)

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("starting server")
	if err := server.Start(e, addr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
