//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billing-panel/backend/internal/integration/razorpay"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	t.clock.SetCurrentTime(day.Add(9 * time.Hour))
	return t.refreshTokens()
}

func (t *testContext) daysPass(days int) error {
	t.clock.Advance(time.Duration(days) * 24 * time.Hour)
	return t.refreshTokens()
}

// refreshTokens logs every known user in again after the clock moved.
func (t *testContext) refreshTokens() error {
	current := t.accessToken
	for mail, old := range t.tokens {
		token, err := t.login(mail)
		if err != nil {
			return err
		}
		t.tokens[mail] = token
		if old == current {
			t.accessToken = token
		}
	}
	return nil
}

func roleEmail(role string) string {
	return strings.ReplaceAll(role, "_", ".") + "@billing.test"
}

func (t *testContext) iAmLoggedInAs(role string) error {
	if _, err := t.ensureUser(bootstrapAdminMail, "admin"); err != nil {
		return err
	}
	mail := bootstrapAdminMail
	if role != "admin" {
		mail = roleEmail(role)
		if _, err := t.ensureUser(mail, role); err != nil {
			return err
		}
	}
	t.accessToken = t.tokens[mail]
	return nil
}

func (t *testContext) iAmNotLoggedIn() error {
	t.accessToken = ""
	return nil
}

// ensureUser registers mail once per scenario and keeps its token.
func (t *testContext) ensureUser(mail, role string) (string, error) {
	if token, ok := t.tokens[mail]; ok {
		return token, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    mail,
		"name":     strings.Split(mail, "@")[0],
		"password": testPassword,
		"role":     role,
	})
	status, body, err := t.call(http.MethodPost, "/api/v1/auth/register", "", payload, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("failed to register %s: %d %s", mail, status, body)
	}

	token, err := t.login(mail)
	if err != nil {
		return "", err
	}
	t.tokens[mail] = token
	return token, nil
}

func (t *testContext) login(mail string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"email": mail, "password": testPassword})
	status, body, err := t.call(http.MethodPost, "/api/v1/auth/login", "", payload, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("failed to log in %s: %d %s", mail, status, body)
	}
	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", err
	}
	return auth.AccessToken, nil
}

func (t *testContext) adminToken() (string, error) {
	return t.ensureUser(bootstrapAdminMail, "admin")
}

func (t *testContext) aCustomerExistsWith(name string, content *godog.DocString) error {
	token, err := t.adminToken()
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(content.Content), &fields); err != nil {
		return err
	}
	fields["name"] = name
	if _, ok := fields["email"]; !ok {
		fields["email"] = strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@customer.test"
	}
	payload, _ := json.Marshal(fields)

	status, body, err := t.call(http.MethodPost, "/api/v1/customers", token, payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to create customer %s: %d %s", name, status, body)
	}
	id, err := idFrom(body)
	if err != nil {
		return err
	}
	t.customers[name] = id
	return nil
}

func (t *testContext) customerLoggedUsage(name string, count int, service string, year, month int) error {
	token, err := t.adminToken()
	if err != nil {
		return err
	}
	id, ok := t.customers[name]
	if !ok {
		return fmt.Errorf("unknown customer %q", name)
	}

	payload, _ := json.Marshal(map[string]any{
		"customer_id": id.String(),
		"service":     service,
		"count":       count,
		"year":        year,
		"month":       month,
	})
	status, body, err := t.call(http.MethodPost, "/api/v1/usage-logs", token, payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to log usage: %d %s", status, body)
	}
	return nil
}

func (t *testContext) anInvoiceIsGenerated(name string, year, month int) error {
	token, err := t.adminToken()
	if err != nil {
		return err
	}
	id, ok := t.customers[name]
	if !ok {
		return fmt.Errorf("unknown customer %q", name)
	}

	payload, _ := json.Marshal(map[string]any{"customer_id": id.String(), "year": year, "month": month})
	status, body, err := t.call(http.MethodPost, "/api/v1/invoices/generate", token, payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to generate invoice: %d %s", status, body)
	}
	t.invoiceID, err = idFrom(body)
	return err
}

func (t *testContext) theGatewayRespondsWith(method, path string, status int, content *godog.DocString) error {
	var body any
	if err := json.Unmarshal([]byte(content.Content), &body); err != nil {
		return err
	}
	t.gateway.SetResponse(method, path, status, body)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, nil)
}

func (t *testContext) aSignedWebhookIsDelivered(body *godog.DocString) error {
	payload := []byte(t.replacePlaceholders(body.Content))
	return t.aWebhookWithSignatureIsDeliveredRaw(razorpay.Sign(testWebhookSecret, payload), payload)
}

func (t *testContext) aWebhookWithSignatureIsDelivered(signature string, body *godog.DocString) error {
	return t.aWebhookWithSignatureIsDeliveredRaw(signature, []byte(t.replacePlaceholders(body.Content)))
}

func (t *testContext) aWebhookWithSignatureIsDeliveredRaw(signature string, payload []byte) error {
	return t.executeRequest(http.MethodPost, "/api/v1/webhook/razorpay", payload, map[string]string{
		"X-Razorpay-Signature": signature,
	})
}

func (t *testContext) theReminderActionsAreExecuted() error {
	ctx := context.Background()
	out, err := t.injector.ExecuteActions.Execute(ctx)
	if err != nil {
		return err
	}
	if out.Failed > 0 {
		return fmt.Errorf("%d reminder actions failed", out.Failed)
	}
	t.injector.EmailWorker.Drain(ctx)
	return nil
}

// replacePlaceholders expands {{invoice_id}}, {{last_id}} and {{customer:Name}}.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{invoice_id}}", t.invoiceID.String())
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	for name, id := range t.customers {
		content = strings.ReplaceAll(content, "{{customer:"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) call(method, path, token string, payload []byte, headers map[string]string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (t *testContext) executeRequest(method, path string, payload []byte, extra map[string]string) error {
	headers := make(map[string]string, len(t.headers)+len(extra))
	for key, value := range t.headers {
		headers[key] = value
	}
	for key, value := range extra {
		headers[key] = value
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: raw, header: resp.Header}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = parsed

	if object, ok := parsed.(map[string]any); ok {
		if id, ok := object["id"].(string); ok {
			t.lastID = id
		}
	}
	return nil
}

func idFrom(body []byte) (uuid.UUID, error) {
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &object); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(object.ID)
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(string); ok {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", t.response.raw)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %s", field, t.response.raw)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.header.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theGatewayShouldHaveReceived(count int, method, path string) error {
	if actual := t.gateway.CallCount(method, path); actual != count {
		return fmt.Errorf("expected %d %s %s calls to the gateway, got %d", count, method, path, actual)
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSentTo(count int, to string) error {
	sent := 0
	for _, mail := range t.mailer.Sent() {
		if mail.To == to {
			sent++
		}
	}
	if sent != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, to, sent)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
