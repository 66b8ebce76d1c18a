package main

import (
	"context"
	"dashboard/backend"
	"dashboard/database"
	"dashboard/entities/credentials"
	"dashboard/entities/followup"
	"dashboard/entities/funnels"
	funnelshistory "dashboard/entities/funnels_history"
	"dashboard/entities/instances"
	"dashboard/entities/integrations"
	"dashboard/entities/leads"
	"dashboard/entities/notifications"
	"dashboard/entities/preferences"
	"dashboard/entities/settings"
	"dashboard/entities/users"
	"dashboard/entities/workspaces"
	"dashboard/middlewares"
	"dashboard/realtime"
	"dashboard/utils"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const SHUTDOWN_TIMEOUT = 15 * time.Second

func main() {
	cfg := utils.LoadEnvVariables()

	logger := utils.NewLogger(cfg.Env)
	defer logger.Sync()

	if cfg.IsRelease() {
		fmt.Printf("\033[1;31;47m[ATENÇÃO] Rodando em ambiente de PRODUÇÃO!\033[0m\n")
	} else {
		fmt.Printf("[INFO] Ambiente atual: %s\n", cfg.Env)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalw("failed to connect to mongodb", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURI)
	if err != nil {
		logger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	subscriber, err := realtime.NewSubscriber(cfg.APIBaseURL, nil, logger)
	if err != nil {
		logger.Fatalw("invalid API_BASE_URL for live updates", "error", err)
	}

	client := backend.NewClient(cfg.APIBaseURL, nil, logger)
	funnelsAPI := backend.NewFunnels(client)
	leadsAPI := backend.NewLeads(client)

	history := funnelshistory.NewStore(mongoClient, database.GetDB(cfg.Env), logger)
	hub := realtime.NewHub(logger)
	boards := funnels.NewBoards(funnelsAPI, leadsAPI, subscriber, hub, logger)

	funnelsHandler := funnels.NewHandler(funnelsAPI, backend.NewStages(client), boards, hub, history, cfg.DefaultUserID, logger)
	leadsHandler := leads.NewHandler(leadsAPI, funnelsAPI, boards, history, cfg.DefaultUserID, logger)
	followupHandler := followup.NewHandler(backend.NewFollowUp(client), history, cfg.DefaultUserID, logger)
	historyHandler := funnelshistory.NewHandler(history, logger)
	credentialsHandler := credentials.NewHandler(backend.NewCredentials(client), logger)
	settingsHandler := settings.NewHandler(backend.NewSystemConfig(client), logger)
	usersHandler := users.NewHandler(backend.NewUsers(client), logger)
	instancesHandler := instances.NewHandler(backend.NewInstances(client), instances.NewGateway(cfg.EvolutionConnectTimeout, logger), logger)
	notificationsHandler := notifications.NewHandler(backend.NewNotifications(client), cfg.DefaultUserID, logger)
	workspacesHandler := workspaces.NewHandler(workspaces.NewAutomation(cfg.N8NWorkspaceWebhookURL, logger), logger)
	preferencesHandler := preferences.NewHandler(preferences.NewRedisStore(redisClient), cfg.DefaultUserID, logger)
	integrationsHandler := integrations.NewHandler(cfg.AppURL, cfg.RDStationClientID, logger)

	auth := middlewares.NewAuthenticator(cfg.AuthAPIURL, middlewares.NewRedisUserCache(redisClient, logger), logger)
	private := func(h http.HandlerFunc) http.Handler {
		return auth.Auth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return auth.Auth(middlewares.RequireAdmin(h))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /v1/me", private(usersHandler.Me))

	mux.Handle("GET /v1/funnels", private(funnelsHandler.GetAll))
	mux.Handle("GET /v1/funnels/{id}", private(funnelsHandler.GetOne))
	mux.Handle("POST /v1/funnels", private(funnelsHandler.CreateOne))
	mux.Handle("PATCH /v1/funnels/{id}", private(funnelsHandler.UpdateOne))
	mux.Handle("DELETE /v1/funnels/{id}", private(funnelsHandler.DeleteOne))
	mux.Handle("POST /v1/funnels/{id}/stages", private(funnelsHandler.CreateOneStage))
	mux.Handle("DELETE /v1/funnels/{id}/stages/{stageId}", private(funnelsHandler.DeleteOneStage))
	mux.Handle("POST /v1/funnels/{id}/leads/{leadId}/move", private(funnelsHandler.MoveLead))
	mux.Handle("GET /v1/funnels/{id}/history", private(historyHandler.GetAll))
	mux.Handle("GET /v1/ws/funnels/{id}", private(funnelsHandler.WebSocket))

	mux.Handle("POST /v1/leads", private(leadsHandler.CreateOne))
	mux.Handle("PATCH /v1/leads/{id}", private(leadsHandler.UpdateOne))
	mux.Handle("DELETE /v1/leads/{id}", private(leadsHandler.DeleteOne))

	mux.Handle("GET /v1/followup/{funnelId}", private(followupHandler.GetBoard))
	mux.Handle("GET /v1/followup/{funnelId}/agent", private(followupHandler.GetAgent))
	mux.Handle("PUT /v1/followup/{funnelId}/agent", private(followupHandler.SaveAgent))
	mux.Handle("POST /v1/followup/{funnelId}/steps", private(followupHandler.CreateStep))
	mux.Handle("PUT /v1/followup/{funnelId}/steps/{stepId}", private(followupHandler.UpdateStep))
	mux.Handle("DELETE /v1/followup/{funnelId}/steps/{stepId}", private(followupHandler.DeleteStep))
	mux.Handle("POST /v1/followup/{funnelId}/leads", private(followupHandler.AddLead))
	mux.Handle("POST /v1/followup/{funnelId}/leads/{id}/move", private(followupHandler.MoveLead))
	mux.Handle("POST /v1/followup/{funnelId}/leads/{id}/{action}", private(followupHandler.LeadAction))
	mux.Handle("DELETE /v1/followup/{funnelId}/leads/{id}", private(followupHandler.RemoveLead))
	mux.Handle("GET /v1/followup/{funnelId}/history", private(followupHandler.GetHistory))

	mux.Handle("GET /v1/credentials", private(credentialsHandler.GetAll))
	mux.Handle("POST /v1/credentials", private(credentialsHandler.CreateOne))
	mux.Handle("POST /v1/credentials/preview", private(credentialsHandler.Preview))
	mux.Handle("PUT /v1/credentials/{id}", private(credentialsHandler.UpdateOne))
	mux.Handle("DELETE /v1/credentials/{id}", private(credentialsHandler.DeleteOne))

	mux.Handle("GET /v1/instances", private(instancesHandler.GetAll))
	mux.Handle("POST /v1/instances", private(instancesHandler.CreateOne))
	mux.Handle("DELETE /v1/instances/{id}", private(instancesHandler.DeleteOne))
	mux.Handle("POST /v1/instances/{id}/connect", private(instancesHandler.Connect))

	mux.Handle("GET /v1/notifications", private(notificationsHandler.GetAll))
	mux.Handle("PATCH /v1/notifications/read-all", private(notificationsHandler.MarkAllRead))
	mux.Handle("PATCH /v1/notifications/{id}/read", private(notificationsHandler.MarkRead))
	mux.Handle("PATCH /v1/notifications/{id}/dismiss", private(notificationsHandler.Dismiss))

	mux.Handle("POST /v1/workspaces", private(workspacesHandler.CreateOne))

	mux.Handle("GET /v1/preferences", private(preferencesHandler.GetOne))
	mux.Handle("PUT /v1/preferences", private(preferencesHandler.UpdateOne))
	mux.Handle("DELETE /v1/preferences", private(preferencesHandler.DeleteOne))

	mux.Handle("GET /v1/integrations/rdstation/authorize", private(integrationsHandler.RDStationAuthorize))

	mux.Handle("GET /v1/settings", admin(settingsHandler.GetOne))
	mux.Handle("PUT /v1/settings", admin(settingsHandler.UpdateOne))
	mux.Handle("GET /v1/users", admin(usersHandler.GetAll))
	mux.Handle("PATCH /v1/users/{id}", admin(usersHandler.UpdateOne))
	mux.Handle("DELETE /v1/users/{id}", admin(usersHandler.DeleteOne))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middlewares.SecurityHeaders(middlewares.Cors(cfg.AppURL, cfg.IsRelease())(middlewares.RequestLog(logger)(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Servidor iniciado na porta %s às %s\n", cfg.Port, time.Now().Format("2006-01-02 15:04:05"))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}
