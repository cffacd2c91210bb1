// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)

	if rf, ok := ret.Get(0).(func(context.Context, *models.User) error); ok {
		return rf(ctx, user)
	}

	return ret.Error(0)
}

func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)

	return ret.Error(0)
}

func (_m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Product); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)

	return ret.Error(0)
}

func (_m *MockProductRepository) ListProducts(ctx context.Context, page, size int, activeOnly bool) ([]*models.Product, int, error) {
	ret := _m.Called(ctx, page, size, activeOnly)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Int(1), ret.Error(2)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockCartRepository) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	ret := _m.Called(ctx, owner)

	var r0 *models.Cart
	if rf, ok := ret.Get(0).(func(context.Context, models.CartOwner) *models.Cart); ok {
		r0 = rf(ctx, owner)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Cart)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	ret := _m.Called(ctx, cart)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Cart) error); ok {
		return rf(ctx, cart)
	}

	return ret.Error(0)
}

func (_m *MockCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	ret := _m.Called(ctx, cart)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Cart) error); ok {
		return rf(ctx, cart)
	}

	return ret.Error(0)
}

func (_m *MockCartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func (_m *MockCartRepository) DeleteCartByOwner(ctx context.Context, owner models.CartOwner) error {
	ret := _m.Called(ctx, owner)

	return ret.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order, cart *models.Cart) error {
	ret := _m.Called(ctx, order, cart)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Order, *models.Cart) error); ok {
		return rf(ctx, order, cart)
	}

	return ret.Error(0)
}

func (_m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Order
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Order); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) GetOrderByMerchantOID(ctx context.Context, merchantOID string) (*models.Order, error) {
	ret := _m.Called(ctx, merchantOID)

	var r0 *models.Order
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Order); ok {
		r0 = rf(ctx, merchantOID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Order)
	}

	return r0, ret.Error(1)
}

func (_m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, userID, page, size)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOrderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*models.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Order)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockOrderRepository) UpdateOrderState(ctx context.Context, order *models.Order, expected models.OrderStatus) error {
	ret := _m.Called(ctx, order, expected)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Order, models.OrderStatus) error); ok {
		return rf(ctx, order, expected)
	}

	return ret.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func NewMockAuditRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuditRepository {
	m := &MockAuditRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockAuditRepository) Log(ctx context.Context, entry *models.AuditLog) error {
	ret := _m.Called(ctx, entry)

	return ret.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	ret := _m.Called(ctx, notification)

	return ret.Error(0)
}

func (_m *MockNotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	ret := _m.Called(ctx, id, status, errorMsg)

	return ret.Error(0)
}

func (_m *MockNotificationRepository) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []*models.Notification
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Notification)
	}

	return r0, ret.Int(1), ret.Error(2)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateLimitRepository {
	m := &MockRateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (_m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	ret := _m.Called(ctx, email)

	return ret.Bool(0), ret.Int(1), ret.Int(2), ret.Error(3)
}
