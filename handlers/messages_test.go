package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/dao"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitHandleCreateMessage(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Missing fields are rejected", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		router := buildTestRouter(mock, cfg, nil)

		req := httptest.NewRequest("POST", "/api/messages/contact", bytes.NewBufferString(`{"name":"Abebe"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(decodeEnvelope(t, w.Body).Error, ShouldEqual, "all fields are required")
	})

	Convey("Successful contact-form submission", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		router := buildTestRouter(mock, cfg, nil)
		mock.EXPECT().CreateMessageResource(gomock.Any()).Return(nil)

		body := `{"name":"Abebe Bikila","email":"abebe@example.com","subject":"Volunteering","message":"I would like to help."}`
		req := httptest.NewRequest("POST", "/api/messages/contact", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusCreated)
		envelope := decodeEnvelope(t, w.Body)
		So(envelope.Success, ShouldBeTrue)
		So(w.Body.String(), ShouldContainSubstring, "Volunteering")
	})
}

func TestUnitHandleListMessages(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Messages are returned with a count", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		router := buildTestRouter(mock, cfg, nil)
		mock.EXPECT().ListMessageResources().Return([]models.MessageResourceDB{
			{ID: "m1", Name: "Abebe", Subject: "Volunteering"},
			{ID: "m2", Name: "Tirunesh", Subject: "Donation receipt"},
		}, nil)

		req := httptest.NewRequest("GET", "/api/messages/all", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
		envelope := decodeEnvelope(t, w.Body)
		So(envelope.Success, ShouldBeTrue)
		So(*envelope.Count, ShouldEqual, 2)
	})
}

func TestUnitPreflightRequests(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	preflight := func(router http.Handler, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("OPTIONS", target, nil)
		req.Header.Set("Origin", "https://gidf.org.et")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Convey("Preflight requests short-circuit on every browser-facing route", t, func() {
		mock := dao.NewMockDAO(mockCtrl)
		router := buildTestRouter(mock, cfg, nil)

		targets := []string{
			"/api/donations",
			"/api/donations/d1/verify",
			"/api/messages/contact",
			"/api/api-management",
			"/api/api-management/Awash%20Bank",
			"/api/api-management/Awash%20Bank/renew",
		}

		for _, target := range targets {
			w := preflight(router, target)
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://gidf.org.et")
		}
	})
}
