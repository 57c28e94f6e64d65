package cmd

import (
	"context"
	"fmt"
	"net/http"

	"greencity/api"
	apiattendee "greencity/api/attendee"
	apicomment "greencity/api/comment"
	apievent "greencity/api/event"
	apifriend "greencity/api/friend"
	"greencity/api/health"
	"greencity/api/middleware"
	apinotification "greencity/api/notification"
	apisubscription "greencity/api/subscription"
	attendeeapp "greencity/application/attendee"
	commentapp "greencity/application/comment"
	"greencity/application/email"
	eventapp "greencity/application/event"
	friendapp "greencity/application/friend"
	notificationapp "greencity/application/notification"
	subscriptionapp "greencity/application/subscription"
	"greencity/config"
	"greencity/domain/attendee"
	"greencity/domain/comment"
	"greencity/domain/event"
	"greencity/domain/friend"
	"greencity/domain/notification"
	"greencity/domain/shared"
	"greencity/domain/subscription"
	"greencity/domain/user"
	"greencity/infrastructure/i18n"
	"greencity/infrastructure/mailer"
	"greencity/infrastructure/persistence/mocks"
	"greencity/infrastructure/persistence/mysql"
	"greencity/infrastructure/persistence/retry"
	"greencity/infrastructure/restclient"
	"greencity/infrastructure/storage"
	"greencity/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories 一组仓储实现，mysql 或内存
type Repositories struct {
	Users         user.Repository
	Events        event.Repository
	Attendees     attendee.Repository
	Comments      comment.Repository
	Friends       friend.Repository
	Notifications notification.Repository
	Subscriptions subscription.Repository
	UoW           shared.UnitOfWork
}

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg    *config.Config
	repos  *Repositories
	sender email.Sender
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithRepositories 跳过数据库初始化，直接使用给定仓储
func (b *AppBuilder) WithRepositories(repos Repositories) *AppBuilder {
	b.repos = &repos
	return b
}

// WithEmailSender 替换邮件服务客户端
func (b *AppBuilder) WithEmailSender(sender email.Sender) *AppBuilder {
	b.sender = sender
	return b
}

// Build creates the App instance. The logger must be initialized by the caller.
func (b *AppBuilder) Build() (*App, error) {
	logger.Info("Building application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	var db *gorm.DB
	if b.repos == nil {
		var (
			repos Repositories
			err   error
		)
		db, repos, err = b.initRepositories()
		if err != nil {
			return nil, err
		}
		b.repos = &repos
	}

	catalog, err := i18n.Load(b.cfg.I18n)
	if err != nil {
		return nil, fmt.Errorf("failed to load i18n bundles: %w", err)
	}
	images, err := storage.NewLocalImageStore(b.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init image storage: %w", err)
	}
	sender, err := b.emailSender()
	if err != nil {
		return nil, err
	}
	pool, err := mailer.NewPool(b.cfg.Email.Workers, b.cfg.Email.QueueSize, b.cfg.Email.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to start mailer pool: %w", err)
	}
	notifier := email.NewNotifier(sender, pool)

	r := b.repos
	eventService := eventapp.NewApplicationService(r.Events, r.Users, r.UoW, images, notifier)
	attendeeService := attendeeapp.NewApplicationService(r.Attendees, r.Events, r.Users, r.UoW)
	commentService := commentapp.NewApplicationService(r.Comments, r.Events, r.Users, r.UoW, notifier)
	friendService := friendapp.NewApplicationService(r.Friends, r.Users, r.UoW)
	notificationService := notificationapp.NewApplicationService(r.Notifications, r.Users, catalog)
	subscriptionService := subscriptionapp.NewApplicationService(r.Subscriptions, r.UoW)

	probes := []health.Probe{health.MailerProbe(pool)}
	if conn := sqlDB(db); conn != nil {
		probes = append(probes, health.DatabaseProbe(conn))
	}

	controllers := api.Controllers{
		Health:       health.NewController(b.cfg, probes...),
		Event:        apievent.NewController(eventService),
		Attendee:     apiattendee.NewController(attendeeService),
		Comment:      apicomment.NewController(commentService),
		Friend:       apifriend.NewController(friendService),
		Notification: apinotification.NewController(notificationService),
		Subscription: apisubscription.NewController(subscriptionService),
	}

	router := api.NewRouter(b.cfg, controllers, middleware.NewAuthenticator(b.cfg.Auth))
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
		mailer: pool,
	}, nil
}

func (b *AppBuilder) initRepositories() (*gorm.DB, Repositories, error) {
	if b.cfg.Database.Type != "mysql" {
		logger.Info("Using in-memory persistence layer")
		users := mocks.NewMockUserRepository()
		attendees := mocks.NewMockEventAttendeeRepository()
		comments := mocks.NewMockEventCommentRepository()
		return nil, Repositories{
			Users:         users,
			Events:        mocks.NewMockEventRepository(attendees, comments),
			Attendees:     attendees,
			Comments:      comments,
			Friends:       mocks.NewMockFriendRepository(users),
			Notifications: mocks.NewMockNotificationRepository(),
			Subscriptions: mocks.NewMockNewsSubscriptionRepository(),
			UoW:           mocks.NewMockUnitOfWork(),
		}, nil
	}

	logger.Info("Using MySQL/GORM persistence layer")
	db, err := mysql.NewConnector(b.cfg.Database).Connect(context.Background())
	if err != nil {
		return nil, Repositories{}, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	// Auto migration in development environment
	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, Repositories{}, err
		}
	}

	return db, Repositories{
		Users:         mysql.NewUserRepository(db),
		Events:        mysql.NewEventRepository(db),
		Attendees:     mysql.NewEventAttendeeRepository(db),
		Comments:      mysql.NewEventCommentRepository(db),
		Friends:       mysql.NewFriendRepository(db),
		Notifications: mysql.NewNotificationRepository(db),
		Subscriptions: mysql.NewNewsSubscriptionRepository(db),
		UoW:           mysql.NewUnitOfWork(db, retry.NewPolicy(b.cfg.Database.Retry)),
	}, nil
}

func (b *AppBuilder) emailSender() (email.Sender, error) {
	if b.sender != nil {
		return b.sender, nil
	}
	if !b.cfg.Email.Enabled {
		logger.Info("Email service disabled, messages are only logged")
		return restclient.LoggingSender{}, nil
	}
	client, err := restclient.New(restclient.Config{BaseURL: b.cfg.Email.BaseURL, Timeout: b.cfg.Email.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create email client: %w", err)
	}
	return client, nil
}

