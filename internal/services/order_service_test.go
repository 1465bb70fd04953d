package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/models"
)

func validBilling() *BillingRequest {
	return &BillingRequest{
		Name: "Alice", Email: "alice@example.com", Phone: "0771234567",
		Address: "1 Main St", City: "Colombo", ZipCode: "00100", Country: "LK",
	}
}

func TestBillingRequestAcceptsZipCodeAlias(t *testing.T) {
	var req CreateOrderRequest
	body := `{"order_data":{"product_id":"PROD-1","quantity":2,"total_price":10},
		"billing_data":{"name":"A","email":"a@b.c","phone":"1","address":"x","city":"y","zipCode":"12345","country":"LK"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "12345", req.BillingData.ZipCode)
	assert.Equal(t, 2, req.OrderData.Quantity)

	var snake BillingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"zip_code":"999","zipCode":"111"}`), &snake))
	assert.Equal(t, "999", snake.ZipCode)
}

type OrderServiceTestSuite struct {
	serviceSuite
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) TestCreateOrder() {
	res, err := s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: "PROD-ANY", Quantity: 2, TotalPrice: 300}, validBilling())
	s.Require().NoError(err)
	s.NotZero(res.OrderID)
	s.NotZero(res.BillingID)

	var order models.Order
	s.Require().NoError(s.db.First(&order, res.OrderID).Error)
	s.Equal(models.OrderStatusPending, order.Status)
	s.False(order.CreatedAt.IsZero())

	var billing models.BillingDetails
	s.Require().NoError(s.db.First(&billing, res.BillingID).Error)
	s.Equal(res.OrderID, billing.OrderID)
}

func (s *OrderServiceTestSuite) TestCreateOrderValidatesBothInputsFirst() {
	_, err := s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: "PROD-ANY", Quantity: 0}, validBilling())
	s.requireCode(err, apperror.CodeValidation)

	billing := validBilling()
	billing.City = ""
	_, err = s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: "PROD-ANY", Quantity: 1}, billing)
	s.requireCode(err, apperror.CodeValidation)

	s.Zero(s.count(&models.Order{}))
}

func (s *OrderServiceTestSuite) TestBillingFailureKeepsOrder() {
	s.failCreatesOn("billing_details")

	res, err := s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: "PROD-ANY", Quantity: 1, TotalPrice: 10}, validBilling())
	s.requireCode(err, apperror.CodePersistenceFailure)
	s.Require().NotNil(res)
	s.NotZero(res.OrderID)
	s.Zero(res.BillingID)
	s.Equal(map[string]interface{}{"order_id": res.OrderID}, apperror.As(err).Details())

	s.Equal(int64(1), s.count(&models.Order{}))
	s.Zero(s.count(&models.BillingDetails{}))

	views, err := s.orders.ListOrders(ctxBG)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Nil(views[0].BillingDetails)
}

func (s *OrderServiceTestSuite) TestListOrdersJoinsCatalog() {
	product := s.createProduct("lamp")

	_, err := s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: product.Basic.ProductID, Quantity: 1, TotalPrice: 150}, validBilling())
	s.Require().NoError(err)
	_, err = s.orders.CreateOrder(ctxBG, &OrderRequest{ProductID: "PROD-UNKNOWN", Quantity: 1, TotalPrice: 1}, validBilling())
	s.Require().NoError(err)

	views, err := s.orders.ListOrders(ctxBG)
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	s.Require().NotNil(views[0].ProductDetails.ID)
	s.Equal(product.Basic.ID, *views[0].ProductDetails.ID)
	s.Equal(models.StringList{"https://img.example/lamp.png"}, views[0].ProductDetails.Images)
	s.Require().NotNil(views[0].BillingDetails)
	s.Equal("00100", views[0].BillingDetails.ZipCode)

	s.Nil(views[1].ProductDetails.ID)
	s.Nil(views[1].ProductDetails.Images)
}
