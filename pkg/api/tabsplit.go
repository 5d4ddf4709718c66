// Package api defines the tabsplit.v1 Connect services: request and response
// messages, procedure names, HTTP handlers and clients.
//
// Messages are plain Go structs carried with a JSON codec, so any Connect client
// speaking application/json can call the services.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// TabServiceName is the fully-qualified name of the TabService service.
	TabServiceName = "tabsplit.v1.TabService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "tabsplit.v1.ExpenseService"
)

// Procedure names, usable as HTTP paths and as Spec().Procedure in interceptors.
const (
	TabServiceCreateTabProcedure        = "/tabsplit.v1.TabService/CreateTab"
	TabServiceGetTabProcedure           = "/tabsplit.v1.TabService/GetTab"
	TabServiceListTabsProcedure         = "/tabsplit.v1.TabService/ListTabs"
	TabServiceAddParticipantProcedure   = "/tabsplit.v1.TabService/AddParticipant"
	TabServiceDeleteTabProcedure        = "/tabsplit.v1.TabService/DeleteTab"
	TabServiceGetTabBalancesProcedure   = "/tabsplit.v1.TabService/GetTabBalances"
	TabServiceRecordSettlementProcedure = "/tabsplit.v1.TabService/RecordSettlement"

	ExpenseServicePreviewSplitProcedure  = "/tabsplit.v1.ExpenseService/PreviewSplit"
	ExpenseServiceCreateExpenseProcedure = "/tabsplit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure    = "/tabsplit.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/tabsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/tabsplit.v1.ExpenseService/DeleteExpense"
)

// TabServiceHandler is implemented by the server side of tabsplit.v1.TabService.
type TabServiceHandler interface {
	CreateTab(context.Context, *connect.Request[CreateTabRequest]) (*connect.Response[CreateTabResponse], error)
	GetTab(context.Context, *connect.Request[GetTabRequest]) (*connect.Response[GetTabResponse], error)
	ListTabs(context.Context, *connect.Request[ListTabsRequest]) (*connect.Response[ListTabsResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	DeleteTab(context.Context, *connect.Request[DeleteTabRequest]) (*connect.Response[DeleteTabResponse], error)
	GetTabBalances(context.Context, *connect.Request[GetTabBalancesRequest]) (*connect.Response[GetTabBalancesResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
}

// ExpenseServiceHandler is implemented by the server side of tabsplit.v1.ExpenseService.
type ExpenseServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewTabServiceHandler builds an HTTP handler for svc. It returns the path to
// mount the handler on.
func NewTabServiceHandler(svc TabServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		TabServiceCreateTabProcedure:        connect.NewUnaryHandler(TabServiceCreateTabProcedure, svc.CreateTab, opts...),
		TabServiceGetTabProcedure:           connect.NewUnaryHandler(TabServiceGetTabProcedure, svc.GetTab, opts...),
		TabServiceListTabsProcedure:         connect.NewUnaryHandler(TabServiceListTabsProcedure, svc.ListTabs, opts...),
		TabServiceAddParticipantProcedure:   connect.NewUnaryHandler(TabServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TabServiceDeleteTabProcedure:        connect.NewUnaryHandler(TabServiceDeleteTabProcedure, svc.DeleteTab, opts...),
		TabServiceGetTabBalancesProcedure:   connect.NewUnaryHandler(TabServiceGetTabBalancesProcedure, svc.GetTabBalances, opts...),
		TabServiceRecordSettlementProcedure: connect.NewUnaryHandler(TabServiceRecordSettlementProcedure, svc.RecordSettlement, opts...),
	}
	return "/" + TabServiceName + "/", router(routes)
}

// NewExpenseServiceHandler builds an HTTP handler for svc. It returns the path to
// mount the handler on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		ExpenseServicePreviewSplitProcedure:  connect.NewUnaryHandler(ExpenseServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		ExpenseServiceCreateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:    connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:  connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceDeleteExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
	}
	return "/" + ExpenseServiceName + "/", router(routes)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedTabServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTabServiceHandler struct{}

func (UnimplementedTabServiceHandler) CreateTab(context.Context, *connect.Request[CreateTabRequest]) (*connect.Response[CreateTabResponse], error) {
	return nil, unimplemented(TabServiceCreateTabProcedure)
}

func (UnimplementedTabServiceHandler) GetTab(context.Context, *connect.Request[GetTabRequest]) (*connect.Response[GetTabResponse], error) {
	return nil, unimplemented(TabServiceGetTabProcedure)
}

func (UnimplementedTabServiceHandler) ListTabs(context.Context, *connect.Request[ListTabsRequest]) (*connect.Response[ListTabsResponse], error) {
	return nil, unimplemented(TabServiceListTabsProcedure)
}

func (UnimplementedTabServiceHandler) AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return nil, unimplemented(TabServiceAddParticipantProcedure)
}

func (UnimplementedTabServiceHandler) DeleteTab(context.Context, *connect.Request[DeleteTabRequest]) (*connect.Response[DeleteTabResponse], error) {
	return nil, unimplemented(TabServiceDeleteTabProcedure)
}

func (UnimplementedTabServiceHandler) GetTabBalances(context.Context, *connect.Request[GetTabBalancesRequest]) (*connect.Response[GetTabBalancesResponse], error) {
	return nil, unimplemented(TabServiceGetTabBalancesProcedure)
}

func (UnimplementedTabServiceHandler) RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return nil, unimplemented(TabServiceRecordSettlementProcedure)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return nil, unimplemented(ExpenseServicePreviewSplitProcedure)
}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceCreateExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceGetExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceListExpensesProcedure)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceDeleteExpenseProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

// TabServiceClient is a client for tabsplit.v1.TabService.
type TabServiceClient interface {
	CreateTab(context.Context, *connect.Request[CreateTabRequest]) (*connect.Response[CreateTabResponse], error)
	GetTab(context.Context, *connect.Request[GetTabRequest]) (*connect.Response[GetTabResponse], error)
	ListTabs(context.Context, *connect.Request[ListTabsRequest]) (*connect.Response[ListTabsResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	DeleteTab(context.Context, *connect.Request[DeleteTabRequest]) (*connect.Response[DeleteTabResponse], error)
	GetTabBalances(context.Context, *connect.Request[GetTabBalancesRequest]) (*connect.Response[GetTabBalancesResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
}

// NewTabServiceClient constructs a client for tabsplit.v1.TabService at baseURL
// (for example, http://localhost:8080).
func NewTabServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TabServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &tabServiceClient{
		createTab:        connect.NewClient[CreateTabRequest, CreateTabResponse](httpClient, baseURL+TabServiceCreateTabProcedure, opts...),
		getTab:           connect.NewClient[GetTabRequest, GetTabResponse](httpClient, baseURL+TabServiceGetTabProcedure, opts...),
		listTabs:         connect.NewClient[ListTabsRequest, ListTabsResponse](httpClient, baseURL+TabServiceListTabsProcedure, opts...),
		addParticipant:   connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+TabServiceAddParticipantProcedure, opts...),
		deleteTab:        connect.NewClient[DeleteTabRequest, DeleteTabResponse](httpClient, baseURL+TabServiceDeleteTabProcedure, opts...),
		getTabBalances:   connect.NewClient[GetTabBalancesRequest, GetTabBalancesResponse](httpClient, baseURL+TabServiceGetTabBalancesProcedure, opts...),
		recordSettlement: connect.NewClient[RecordSettlementRequest, RecordSettlementResponse](httpClient, baseURL+TabServiceRecordSettlementProcedure, opts...),
	}
}

type tabServiceClient struct {
	createTab        *connect.Client[CreateTabRequest, CreateTabResponse]
	getTab           *connect.Client[GetTabRequest, GetTabResponse]
	listTabs         *connect.Client[ListTabsRequest, ListTabsResponse]
	addParticipant   *connect.Client[AddParticipantRequest, AddParticipantResponse]
	deleteTab        *connect.Client[DeleteTabRequest, DeleteTabResponse]
	getTabBalances   *connect.Client[GetTabBalancesRequest, GetTabBalancesResponse]
	recordSettlement *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
}

func (c *tabServiceClient) CreateTab(ctx context.Context, req *connect.Request[CreateTabRequest]) (*connect.Response[CreateTabResponse], error) {
	return c.createTab.CallUnary(ctx, req)
}

func (c *tabServiceClient) GetTab(ctx context.Context, req *connect.Request[GetTabRequest]) (*connect.Response[GetTabResponse], error) {
	return c.getTab.CallUnary(ctx, req)
}

func (c *tabServiceClient) ListTabs(ctx context.Context, req *connect.Request[ListTabsRequest]) (*connect.Response[ListTabsResponse], error) {
	return c.listTabs.CallUnary(ctx, req)
}

func (c *tabServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tabServiceClient) DeleteTab(ctx context.Context, req *connect.Request[DeleteTabRequest]) (*connect.Response[DeleteTabResponse], error) {
	return c.deleteTab.CallUnary(ctx, req)
}

func (c *tabServiceClient) GetTabBalances(ctx context.Context, req *connect.Request[GetTabBalancesRequest]) (*connect.Response[GetTabBalancesResponse], error) {
	return c.getTabBalances.CallUnary(ctx, req)
}

func (c *tabServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for tabsplit.v1.ExpenseService.
type ExpenseServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewExpenseServiceClient constructs a client for tabsplit.v1.ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &expenseServiceClient{
		previewSplit:  connect.NewClient[PreviewSplitRequest, PreviewSplitResponse](httpClient, baseURL+ExpenseServicePreviewSplitProcedure, opts...),
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:    connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
	}
}

type expenseServiceClient struct {
	previewSplit  *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense    *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

func (c *expenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}
