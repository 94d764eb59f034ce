package handlers_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/SscSPs/expense_tracker/internal/adapters/veryfi"
	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type formFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

// multipartRequest builds a multipart POST. Files carry an explicit Content-Type part header.
func multipartRequest(url string, fields map[string]string, files ...formFile) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, _ := writer.CreatePart(h)
		_, _ = part.Write(f.content)
	}
	_ = writer.Close()

	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (suite *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

var receiptImage = formFile{field: "file", name: "receipt.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")}

func (suite *HandlerTestSuite) TestProcessReceipt_Success() {
	data := &domain.ReceiptData{
		ID:       "doc-1",
		Vendor:   domain.ReceiptVendor{Name: "Corner Cafe"},
		Date:     "2024-02-10",
		Total:    12.5,
		Currency: "USD",
		Source:   "veryfi",
		Warnings: []string{},
	}

	suite.receipts.On("ValidateReceiptFile", "image/jpeg", int64(len(receiptImage.content))).Return(nil).Once()
	suite.receipts.On("ProcessReceipt", mock.Anything, mock.MatchedBy(func(u domain.ReceiptUpload) bool {
		return u.FileName == "receipt.jpg" && u.UserID == "mobile-user" && string(u.Content) == "jpeg-bytes"
	})).Return(data, nil).Once()

	w := suite.serve(multipartRequest("/api/veryfi/process-receipt", map[string]string{"userId": "mobile-user"}, receiptImage))

	suite.Equal(http.StatusOK, w.Code)
	var got domain.ReceiptData
	suite.decode(w, &got)
	suite.Equal("doc-1", got.ID)
	suite.Equal("Corner Cafe", got.Vendor.Name)
	suite.Equal(12.5, got.Total)
}

func (suite *HandlerTestSuite) TestProcessReceipt_MissingFile() {
	w := suite.serve(multipartRequest("/api/veryfi/process-receipt", map[string]string{"userId": "u"}))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Missing file","details":"No file was provided in the request"}`, w.Body.String())
	suite.receipts.AssertNotCalled(suite.T(), "ProcessReceipt", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestProcessReceipt_RejectedFileType() {
	text := formFile{field: "file", name: "notes.txt", contentType: "text/plain", content: []byte("hello")}
	suite.receipts.On("ValidateReceiptFile", "text/plain", int64(5)).
		Return(fmt.Errorf("%w: unsupported file type text/plain", apperrors.ErrValidation)).Once()

	w := suite.serve(multipartRequest("/api/veryfi/process-receipt", nil, text))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorDetailResponse
	suite.decode(w, &resp)
	suite.Equal("Invalid file", resp.Error)
	suite.receipts.AssertNotCalled(suite.T(), "ProcessReceipt", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestProcessReceipt_ErrorMapping() {
	tests := []struct {
		name      string
		err       error
		status    int
		errorText string
	}{
		{"not configured", fmt.Errorf("veryfi: %w", apperrors.ErrNotConfigured), http.StatusInternalServerError, "API configuration error"},
		{"incomplete", apperrors.ErrIncompleteReceipt, http.StatusUnprocessableEntity, "Incomplete data"},
		{"bad credentials", &veryfi.APIError{StatusCode: http.StatusUnauthorized, Body: "unauthorized"}, http.StatusUnauthorized, "Authentication failed"},
		{"vendor outage", fmt.Errorf("process: %w", &veryfi.APIError{StatusCode: http.StatusServiceUnavailable}), http.StatusBadGateway, "Veryfi API error: 503"},
		{"rate limited", &veryfi.APIError{StatusCode: http.StatusTooManyRequests}, http.StatusTooManyRequests, "Veryfi API error: 429"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.receipts.On("ValidateReceiptFile", "image/jpeg", mock.Anything).Return(nil).Once()
			suite.receipts.On("ProcessReceipt", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.serve(multipartRequest("/api/veryfi/process-receipt", nil, receiptImage))

			suite.Equal(tt.status, w.Code)
			var resp dto.ErrorDetailResponse
			suite.decode(w, &resp)
			suite.Equal(tt.errorText, resp.Error)
		})
	}
}

func (suite *HandlerTestSuite) TestReceiptToExpense_Draft() {
	userID := uuid.NewString()
	receipt := domain.ReceiptData{ID: "doc-1", Vendor: domain.ReceiptVendor{Name: "Corner Cafe"}, Date: "2024-02-10", Total: 12.5, Currency: "USD"}
	draft := domain.Expense{VendorID: "v1", VendorName: "Corner Cafe", Date: "2024-02-10", Amount: 12.5, Currency: "USD", Category: "Meals"}

	suite.receipts.On("ConvertToExpense", mock.MatchedBy(func(r domain.ReceiptData) bool {
		return r.ID == "doc-1" && r.Total == 12.5
	}), "v1").Return(draft).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts/to-expense", dto.ReceiptToExpenseRequest{Receipt: receipt, VendorID: "v1"}, userID)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Expense
	suite.decode(w, &got)
	suite.Equal(userID, got.UserID)
	suite.Equal("Corner Cafe", got.VendorName)
	suite.expenses.AssertNotCalled(suite.T(), "AddExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReceiptToExpense_Save() {
	userID := uuid.NewString()
	receipt := domain.ReceiptData{ID: "doc-2", Date: "2024-02-11", Total: 30}
	draft := domain.Expense{VendorName: "Unknown Vendor", Date: "2024-02-11", Amount: 30, Currency: "USD", Category: "Other"}
	saved := draft
	saved.ID = uuid.NewString()
	saved.UserID = userID

	suite.receipts.On("ConvertToExpense", mock.AnythingOfType("domain.ReceiptData"), "").Return(draft).Once()
	suite.expenses.On("AddExpense", mock.Anything, userID, draft).Return(&saved, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts/to-expense", dto.ReceiptToExpenseRequest{Receipt: receipt, Save: true}, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Expense
	suite.decode(w, &got)
	suite.Equal(saved.ID, got.ID)
}

func (suite *HandlerTestSuite) TestReceiptToExpense_RequiresTotal() {
	body := dto.ReceiptToExpenseRequest{Receipt: domain.ReceiptData{ID: "doc-3"}}
	w := suite.do(http.MethodPost, "/api/v1/receipts/to-expense", body, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.receipts.AssertNotCalled(suite.T(), "ConvertToExpense", mock.Anything, mock.Anything)
}
