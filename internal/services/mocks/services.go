// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService(t testingT) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LoginResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LoginResponse)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) RegisterAdmin(ctx context.Context, caller *models.Principal, req *models.SignupRequest) (*models.User, error) {
	ret := _m.Called(ctx, caller, req)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	ret := _m.Called(ctx, token)

	var r0 *models.Principal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Principal)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) Profile(ctx context.Context, principal *models.Principal) (*models.User, error) {
	ret := _m.Called(ctx, principal)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) Logout(ctx context.Context, principal *models.Principal) error {
	ret := _m.Called(ctx, principal)

	return ret.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func NewMockProductService(t testingT) *MockProductService {
	m := &MockProductService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductService) ListProducts(ctx context.Context, page, pageSize int, activeOnly bool) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, pageSize, activeOnly)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

type MockCartService struct {
	mock.Mock
}

func NewMockCartService(t testingT) *MockCartService {
	m := &MockCartService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCartService) GetCart(ctx context.Context, owner models.CartOwner) (*models.CartSnapshot, error) {
	ret := _m.Called(ctx, owner)

	var r0 *models.CartSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartSnapshot)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartService) AddItem(ctx context.Context, owner models.CartOwner, req *models.AddCartItemRequest) (*models.CartSnapshot, error) {
	ret := _m.Called(ctx, owner, req)

	var r0 *models.CartSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartSnapshot)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartService) UpdateItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID, quantity int) (*models.CartSnapshot, error) {
	ret := _m.Called(ctx, owner, lineID, quantity)

	var r0 *models.CartSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartSnapshot)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartService) RemoveItem(ctx context.Context, owner models.CartOwner, lineID uuid.UUID) (*models.CartSnapshot, error) {
	ret := _m.Called(ctx, owner, lineID)

	var r0 *models.CartSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CartSnapshot)
	}

	return r0, ret.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService(t testingT) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockOrderService) orderResult(ret mock.Arguments) (*models.Order, error) {
	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderService) CreateOrder(ctx context.Context, principal *models.Principal, req *models.CreateOrderRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, req))
}

func (_m *MockOrderService) GetOrder(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.OrderDetails, error) {
	ret := _m.Called(ctx, principal, id)

	var r0 *models.OrderDetails
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.OrderDetails)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderService) ListMyOrders(ctx context.Context, principal *models.Principal, page, size int) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, principal, page, size)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOrderService) GetTracking(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.TrackingInfo, error) {
	ret := _m.Called(ctx, principal, id)

	var r0 *models.TrackingInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TrackingInfo)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderService) CancelOrder(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.CancelOrderRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

func (_m *MockOrderService) UpdateShipping(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateShippingRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

func (_m *MockOrderService) UpdateStatus(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

func (_m *MockOrderService) RequestReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ReturnOrderRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

type MockRefundService struct {
	mock.Mock
}

func NewMockRefundService(t testingT) *MockRefundService {
	m := &MockRefundService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockRefundService) orderResult(ret mock.Arguments) (*models.Order, error) {
	var r0 *models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockRefundService) ApproveReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

func (_m *MockRefundService) RejectReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, id, req))
}

func (_m *MockRefundService) ListPendingReturns(ctx context.Context, page, size int) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockRefundService) RequestRefund(ctx context.Context, principal *models.Principal, req *models.RefundRequest) (*models.Order, error) {
	return _m.orderResult(_m.Called(ctx, principal, req))
}

type MockPaymentService struct {
	mock.Mock
}

func NewMockPaymentService(t testingT) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockPaymentService) InitiatePayment(ctx context.Context, principal *models.Principal, req *models.InitiatePaymentRequest, clientIP string) (*models.InitiatePaymentResponse, error) {
	ret := _m.Called(ctx, principal, req, clientIP)

	var r0 *models.InitiatePaymentResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.InitiatePaymentResponse)
	}

	return r0, ret.Error(1)
}

func (_m *MockPaymentService) HandleCallback(ctx context.Context, cb *models.PaymentCallback) error {
	ret := _m.Called(ctx, cb)

	return ret.Error(0)
}

// MockNotificationService also satisfies the Notifier interface.
type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t testingT) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockNotificationService) OrderPlaced(ctx context.Context, order *models.Order) {
	_m.Called(ctx, order)
}

func (_m *MockNotificationService) PaymentReceived(ctx context.Context, order *models.Order) {
	_m.Called(ctx, order)
}

func (_m *MockNotificationService) StatusChanged(ctx context.Context, order *models.Order) {
	_m.Called(ctx, order)
}

func (_m *MockNotificationService) Wait() {
	_m.Called()
}

func (_m *MockNotificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []*models.Notification
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Notification)
	}

	return r0, ret.Int(1), ret.Error(2)
}
