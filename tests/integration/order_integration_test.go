package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/soleworks/soleworks-api/controllers"
	"github.com/soleworks/soleworks-api/middleware"
	"github.com/soleworks/soleworks-api/models"
	"github.com/soleworks/soleworks-api/services"
	"github.com/soleworks/soleworks-api/tests/testutil"
)

const testSecret = "integration-test-secret"

// OrderIntegrationTestSuite exercises the full storefront flow over real
// routes: public submission and reads, admin-gated mutations, login-issued
// tokens.
type OrderIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	tokens *services.TokenService
}

// SetupSuite runs once before all tests
func (suite *OrderIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

// SetupTest runs before each test
func (suite *OrderIntegrationTestSuite) SetupTest() {
	testutil.RequireTestEnvironment(suite.T())

	suite.db = testutil.NewTestDB(suite.T())
	suite.tokens = services.NewTokenService(testSecret)

	validator := services.NewOrderValidator(services.NewCatalog())
	orderService := services.NewOrderService(suite.db,
		validator,
		services.NewEventPublisher(nil, ""),
		services.NewOrderCache("", ""))
	orderController := controllers.NewOrderController(orderService)
	userController := controllers.NewUserController(suite.db, suite.tokens)
	gate := middleware.NewAdminGate(suite.tokens)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.ListOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id", gate.RequireAdmin(), orderController.UpdateOrderStatus)
			orders.DELETE("/:id", gate.RequireAdmin(), orderController.DeleteOrder)
		}
		users := v1.Group("/users")
		{
			users.POST("/register", userController.Register)
			users.POST("/login", userController.Login)
		}
	}
}

// TearDownTest runs after each test
func (suite *OrderIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *OrderIntegrationTestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		suite.NoError(err)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	suite.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderIntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func sneakerSubmission() map[string]interface{} {
	return map[string]interface{}{
		"customerName":  "Robin Visser",
		"customerEmail": "robin@example.com",
		"shoeSize":      42,
		"address":       "Kerkstraat 1, Amsterdam",
		"modelType":     "sneaker",
		"layers": map[string]interface{}{
			"inside":   map[string]string{"material": "leather", "color": "#ffffff"},
			"laces":    map[string]string{"material": "zebra", "color": "#000000"},
			"outside1": map[string]string{"material": "glitter", "color": "#ff00ff"},
			"outside2": map[string]string{"material": "army", "color": "#00ff00"},
			"sole1":    map[string]string{"material": "crocodile", "color": "#333333"},
			"sole2":    map[string]string{"material": "pizza", "color": "#fadb14"},
		},
	}
}

// TestOrderLifecycle runs the whole storefront flow end to end
func (suite *OrderIntegrationTestSuite) TestOrderLifecycle() {
	adminToken := testutil.IssueAdminToken(suite.T(), testSecret)

	// Submit a fully configured sneaker order
	w := suite.request("POST", "/api/v1/orders", sneakerSubmission(), "")
	suite.Equal(http.StatusCreated, w.Code)

	created := suite.decode(w)
	suite.Equal("success", created["status"])
	order := created["data"].(map[string]interface{})["order"].(map[string]interface{})
	orderNumber := order["orderNumber"].(string)
	suite.NotEmpty(orderNumber)
	suite.Equal("in production", order["status"])
	id := int(order["id"].(float64))

	// The order reads back identically
	w = suite.request("GET", fmt.Sprintf("/api/v1/orders/%d", id), nil, "")
	suite.Equal(http.StatusOK, w.Code)
	fetched := suite.decode(w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	suite.Equal(orderNumber, fetched["orderNumber"])
	suite.Equal(order["layers"], fetched["layers"])

	// An admin ships it
	w = suite.request("PUT", fmt.Sprintf("/api/v1/orders/%d", id),
		map[string]string{"status": "shipped"}, adminToken)
	suite.Equal(http.StatusOK, w.Code)
	updated := suite.decode(w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	suite.Equal("shipped", updated["status"])

	// Deleting without a token is rejected and the record survives
	w = suite.request("DELETE", fmt.Sprintf("/api/v1/orders/%d", id), nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/v1/orders/%d", id), nil, "")
	suite.Equal(http.StatusOK, w.Code)

	// The admin can delete it
	w = suite.request("DELETE", fmt.Sprintf("/api/v1/orders/%d", id), nil, adminToken)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/v1/orders/%d", id), nil, "")
	suite.Equal(http.StatusNotFound, w.Code)
}

// TestLoginIssuedTokenOpensTheGate registers nothing through the API (only
// admins seeded out of band may mutate) and proves a login-issued admin
// token is accepted by the gate
func (suite *OrderIntegrationTestSuite) TestLoginIssuedTokenOpensTheGate() {
	admin := models.User{Username: "boss", Role: models.RoleAdmin}
	suite.NoError(admin.SetPassword("super-secret"))
	suite.NoError(suite.db.Create(&admin).Error)

	w := suite.request("POST", "/api/v1/users/login",
		map[string]string{"username": "boss", "password": "super-secret"}, "")
	suite.Equal(http.StatusOK, w.Code)
	token := suite.decode(w)["data"].(map[string]interface{})["token"].(string)

	w = suite.request("POST", "/api/v1/orders", sneakerSubmission(), "")
	suite.Equal(http.StatusCreated, w.Code)
	order := suite.decode(w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	w = suite.request("PUT", fmt.Sprintf("/api/v1/orders/%d", id),
		map[string]string{"status": "cancelled"}, token)
	suite.Equal(http.StatusOK, w.Code)
}

// TestRegisteredUserCannotMutate proves a token from a freshly registered
// (non-admin) user is rejected by the gate
func (suite *OrderIntegrationTestSuite) TestRegisteredUserCannotMutate() {
	w := suite.request("POST", "/api/v1/users/register",
		map[string]string{"username": "shopper", "password": "pw-123456"}, "")
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.request("POST", "/api/v1/users/login",
		map[string]string{"username": "shopper", "password": "pw-123456"}, "")
	suite.Equal(http.StatusOK, w.Code)
	token := suite.decode(w)["data"].(map[string]interface{})["token"].(string)

	w = suite.request("POST", "/api/v1/orders", sneakerSubmission(), "")
	suite.Equal(http.StatusCreated, w.Code)
	order := suite.decode(w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	w = suite.request("PUT", fmt.Sprintf("/api/v1/orders/%d", id),
		map[string]string{"status": "shipped"}, token)
	suite.Equal(http.StatusForbidden, w.Code)
}

// TestFilteringAndSorting seeds mixed orders and checks the listing contract
func (suite *OrderIntegrationTestSuite) TestFilteringAndSorting() {
	for _, modelType := range []string{"sneaker", "heel", "heel"} {
		body := sneakerSubmission()
		body["modelType"] = modelType
		if modelType == "heel" {
			body["layers"] = map[string]interface{}{
				"Object_2": map[string]string{"material": "leopard", "color": "#c0851f"},
			}
		}
		w := suite.request("POST", "/api/v1/orders", body, "")
		suite.Equal(http.StatusCreated, w.Code)
	}

	w := suite.request("GET", "/api/v1/orders?modelType=heel", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	orders := suite.decode(w)["data"].(map[string]interface{})["orders"].([]interface{})
	suite.Len(orders, 2)
	for _, o := range orders {
		suite.Equal("heel", o.(map[string]interface{})["modelType"])
	}

	w = suite.request("GET", "/api/v1/orders?sortby=date", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	orders = suite.decode(w)["data"].(map[string]interface{})["orders"].([]interface{})
	suite.Len(orders, 3)
}

// TestOrderIntegrationTestSuite runs the suite
func TestOrderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderIntegrationTestSuite))
}
