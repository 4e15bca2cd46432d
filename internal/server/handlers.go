package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/and161185/payform/internal/gateway"
	"github.com/and161185/payform/internal/model"
)

// formErrorKey holds errors that belong to no single field.
const formErrorKey = "form"

const publishTimeout = 3 * time.Second

type indexPage struct {
	Form       model.PayForm
	Errors     map[string]string
	Currencies []model.Currency
	CSRFToken  string
}

func (srv *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	srv.renderForm(w, model.PayForm{}, nil)
}

func (srv *Server) renderForm(w http.ResponseWriter, form model.PayForm, fieldErrors map[string]string) {
	token, err := srv.deps.TokenManager.GenerateToken()
	if err != nil {
		srv.deps.Logger.Errorf("generate csrf token: %v", err)
		srv.render(w, http.StatusInternalServerError, pageError, nil)
		return
	}

	srv.render(w, http.StatusOK, pageIndex, indexPage{
		Form:       form,
		Errors:     fieldErrors,
		Currencies: srv.config.Currencies.List(),
		CSRFToken:  token,
	})
}

// SubmitHandler stores the order before talking to any gateway, so a failed
// payment still leaves its order behind.
func (srv *Server) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		srv.deps.Logger.Warnf("parse form: %v", err)
		srv.renderForm(w, model.PayForm{}, map[string]string{formErrorKey: "The form could not be read."})
		return
	}

	form := model.PayForm{
		Amount:      r.PostFormValue(model.FieldAmount),
		Currency:    r.PostFormValue(model.FieldCurrency),
		Description: r.PostFormValue(model.FieldDescription),
	}

	fieldErrors := make(map[string]string)
	if err := srv.deps.TokenManager.ValidateToken(r.PostFormValue(model.FieldCSRF)); err != nil {
		fieldErrors[model.FieldCSRF] = "The CSRF token is missing or has expired."
	}

	order, err := form.Validate(srv.config.Currencies)
	if verr, ok := model.AsValidationError(err); ok {
		for field, msg := range verr.Fields {
			fieldErrors[field] = msg
		}
	}

	if len(fieldErrors) > 0 {
		srv.renderForm(w, form, fieldErrors)
		return
	}

	currency, err := srv.config.Currencies.Lookup(order.Currency)
	if err != nil {
		srv.deps.Logger.Errorf("lookup currency: %v", err)
		srv.ErrorHandler(w, r)
		return
	}

	order.CreatedDate = srv.now()
	order, err = srv.storage.CreateOrder(r.Context(), order)
	if err != nil {
		srv.deps.Logger.Errorf("create order: %v", err)
		srv.ErrorHandler(w, r)
		return
	}
	srv.deps.Logger.Infof("created order id=%d payway=%s", order.ID, order.Currency)

	srv.publishOrder(r.Context(), order)

	var gatewayForm gateway.Form
	switch currency.Gateway {
	case model.GatewayRedirect:
		gatewayForm, err = srv.redirect.Build(order, currency)
	case model.GatewayInvoice:
		gatewayForm, err = srv.invoiceForm(r.Context(), order, currency)
	default:
		err = fmt.Errorf("currency %s has no gateway", currency.Code)
	}
	if err != nil {
		srv.deps.Logger.Errorf("order %d: %v", order.ID, err)
		srv.ErrorHandler(w, r)
		return
	}

	srv.deps.Logger.Infof("redirecting order id=%d to %s", order.ID, gatewayForm.Action)
	srv.render(w, http.StatusOK, pageRedirect, gatewayForm)
}

func (srv *Server) invoiceForm(ctx context.Context, order model.Order, currency model.Currency) (gateway.Form, error) {
	invoice, err := gateway.NewInvoiceRequest(srv.merchant, order, currency)
	if err != nil {
		return gateway.Form{}, err
	}

	data, err := srv.invoices.SubmitInvoice(ctx, invoice)
	if err != nil {
		return gateway.Form{}, fmt.Errorf("submit invoice %+v: %w", invoice, err)
	}

	if match, ok := data.AmountMatches(order.Amount); ok && !match {
		srv.deps.Logger.Warnf("order %d: gateway amount %s differs from order amount %d",
			order.ID, data["WMI_PAYMENT_AMOUNT"], order.Amount)
	}

	return data.Form(srv.config.CheckoutURL), nil
}

func (srv *Server) publishOrder(ctx context.Context, order model.Order) {
	if srv.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := srv.publisher.PublishOrderCreated(ctx, order); err != nil {
		srv.deps.Logger.Warnf("publish order %d: %v", order.ID, err)
	}
}

func (srv *Server) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := srv.storage.ListOrders(r.Context())
	if err != nil {
		srv.deps.Logger.Errorf("list orders: %v", err)
		srv.ErrorHandler(w, r)
		return
	}

	srv.render(w, http.StatusOK, pageOrders, orders)
}

func (srv *Server) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	srv.render(w, http.StatusNotFound, pageNotFound, nil)
}

func (srv *Server) ErrorHandler(w http.ResponseWriter, r *http.Request) {
	srv.render(w, http.StatusInternalServerError, pageError, nil)
}
