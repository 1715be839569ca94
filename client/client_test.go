package client_test

import (
	"fmt"
	"net"
	"testing"

	"workmate/client"
	"workmate/config"
	"workmate/database"
	"workmate/models"
	authRoutes "workmate/routers/authRoutes"
	notificationRoutes "workmate/routers/notificationRoutes"
	postRoutes "workmate/routers/postRoutes"
	progressRoutes "workmate/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// startServer boots the whole app on a loopback port so the client is
// exercised end to end over real HTTP.
func startServer(t *testing.T) string {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "testsecret",
		SaltRound:     4,
		TokenTTLHours: 1,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.CourseProgress{},
		&models.Notification{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	authRoutes.SetupAuthRoutes(app)
	postRoutes.SetupPostRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestHealth(t *testing.T) {
	c := client.New(startServer(t))

	ok, err := c.Health()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthStateLifecycle(t *testing.T) {
	c := client.New(startServer(t))
	auth := client.NewAuthState(c)

	assert.False(t, auth.IsAuthed())

	user, err := auth.Register(client.RegisterInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.True(t, auth.IsAuthed())

	// The session cookie in the jar authenticates the next call
	me, err := auth.FetchMe()
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "ann@x.com", me.Email)

	require.NoError(t, auth.Logout())
	assert.False(t, auth.IsAuthed())

	// After logout the refreshed session resolves to no user
	me, err = auth.FetchMe()
	require.NoError(t, err)
	assert.Nil(t, me)
}

func TestProgressStateMirror(t *testing.T) {
	c := client.New(startServer(t))
	auth := client.NewAuthState(c)
	progress := client.NewProgressState(c)

	_, err := auth.Register(client.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw1"})
	require.NoError(t, err)

	require.NoError(t, progress.Report(2, 300, 900, 33))
	require.NoError(t, progress.LoadAll())
	assert.True(t, progress.IsLoggedIn)
	assert.Equal(t, 33, progress.CourseProgress(2))
	assert.Equal(t, 300.0, progress.WatchTime[2])
	assert.Zero(t, progress.CourseProgress(1))

	require.NoError(t, progress.Report(2, 900, 900, 100))
	stats, err := progress.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCourses)
	assert.Equal(t, 1, stats.CompletedCourses)

	require.NoError(t, progress.Reset(2))
	require.NoError(t, progress.LoadAll())
	assert.Zero(t, progress.CourseProgress(2))

	courses, err := progress.Courses()
	require.NoError(t, err)
	assert.Len(t, courses, 5)
}

func TestNotificationStateMirror(t *testing.T) {
	c := client.New(startServer(t))
	auth := client.NewAuthState(c)
	inbox := client.NewNotificationState(c)

	_, err := auth.Register(client.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw1"})
	require.NoError(t, err)

	id, err := inbox.Add("Welcome", "hello", "success")
	require.NoError(t, err)
	require.NotZero(t, id)
	assert.Equal(t, 1, inbox.Unread)

	require.NoError(t, inbox.MarkRead(id))
	assert.Zero(t, inbox.Unread)

	// Server-side count agrees with the local mirror
	count, err := inbox.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	created, err := inbox.CheckTrainingProgress(20)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = inbox.CheckTrainingProgress(40)
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, inbox.Load())
	require.Len(t, inbox.Notifications, 2)

	require.NoError(t, inbox.Remove(id))
	assert.Len(t, inbox.Notifications, 1)
}
