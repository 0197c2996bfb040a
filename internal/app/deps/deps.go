package deps

import (
	"context"
	"sync"
	"time"
	"userapi/internal/config"
	dliz "userapi/internal/core/domain/localization"
	dl "userapi/internal/core/domain/logging"
	drl "userapi/internal/core/domain/rate_limiter"
	duow "userapi/internal/core/domain/unit_of_work"
	"userapi/internal/core/domain/user"
	uow "userapi/internal/db/unit_of_work"
	dbuser "userapi/internal/db/user"
	"userapi/internal/implementations/email"
	"userapi/internal/implementations/localization"
	"userapi/internal/implementations/logging"
	passwordhasher "userapi/internal/implementations/password_hasher"
	ratelimiter "userapi/internal/implementations/rate_limiter"
	resettokengenerator "userapi/internal/implementations/reset_token_generator"
	"userapi/internal/implementations/session"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger
	Localizer dliz.Localizer

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	UnitOfWork           duow.UnitOfWork
	UserRepository       user.UserRepository
	SessionRepository    user.SessionRepository
	ResetTokenRepository user.ResetTokenRepository

	RateLimiter drl.RateLimiter

	PasswordHasher           user.PasswordHasher
	SessionTokenGenerator    user.SessionTokenGenerator
	ResetTokenGenerator      user.ResetTokenGenerator
	PasswordResetTokenSender user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.Localizer = localization.NewEnglish()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.ResetTokenRepository = dbuser.NewPgxResetTokenRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionTokenGenerator = session.NewUUID()
	deps.ResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.PasswordResetTokenSender = deps.initPasswordResetTokenSender()

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initPasswordResetTokenSender() user.PasswordResetTokenSender {
	if deps.Config.IsTestMode {
		return user.NewFakePasswordResetTokenSender()
	}
	return email.NewPasswordResetSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.PasswordResetBaseURL,
		deps.Localizer,
	)
}
