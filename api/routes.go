package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/audit"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/bill"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/debt"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/goal"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("ledger-server", "1.0.0"))
	humaAPI.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		logData := logging.NewLogData(r.Logger)
		next(huma.WithContext(ctx, logging.WithLogData(ctx.Context(), logData)))
	})

	transaction.NewCreateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	transfer.NewCreateTransferHandler(r.Operator).Register(humaAPI)
	transfer.NewUpdateTransferHandler(r.Operator).Register(humaAPI)
	transfer.NewDeleteTransferHandler(r.Operator).Register(humaAPI)
	transfer.NewMigrateLegacyHandler(r.Operator).Register(humaAPI)
	transfer.NewGetTransferHandler(r.Service.Transfer).Register(humaAPI)
	transfer.NewListTransfersHandler(r.Service.Transfer).Register(humaAPI)

	account.NewCreateAccountHandler(r.Operator).Register(humaAPI)
	account.NewDeleteAccountHandler(r.Operator).Register(humaAPI)
	account.NewGetAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)

	bill.NewCreateBillHandler(r.Operator).Register(humaAPI)
	bill.NewGetBillHandler(r.Service.Progress).Register(humaAPI)

	debt.NewCreateDebtHandler(r.Operator).Register(humaAPI)
	debt.NewGetDebtHandler(r.Service.Progress).Register(humaAPI)

	goal.NewCreateGoalHandler(r.Operator).Register(humaAPI)
	goal.NewGetGoalHandler(r.Service.Progress).Register(humaAPI)

	audit.NewRunAuditHandler(r.Service.Audit).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
