package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fleetadmin/internal/models"
	"fleetadmin/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTransport records how many requests actually left the client.
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.RoundTrip(r)
}

type backend struct {
	server    *httptest.Server
	transport *countingTransport
	client    *Client
	session   *session.Manager
}

func newBackend(t *testing.T, handler http.HandlerFunc) *backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport := &countingTransport{next: http.DefaultTransport}
	sess := session.NewManager(session.NewMemoryStore())
	client := NewClient(server.URL, &http.Client{Transport: transport}, sess, zerolog.Nop())
	return &backend{server: server, transport: transport, client: client, session: sess}
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// result is the type-erased part of an outcome the no-token table checks.
type result struct {
	success bool
	message string
	kind    models.FailureKind
}

func resultOf[T any](o models.Outcome[T]) result {
	return result{success: o.Success, message: o.Message, kind: o.Kind}
}

func TestNoTokenNeverReachesNetwork(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "statusCode": 200, "data": []any{}})
	})
	ctx := context.Background()

	bookings := NewBookingService(b.client)
	cars := NewCarService(b.client)
	users := NewUserService(b.client)
	vendors := NewVendorService(b.client)
	parking := NewParkingService(b.client)
	managers := NewParkingManagerService(b.client)

	tests := []struct {
		name string
		call func() result
	}{
		{"bookings list", func() result { return resultOf(bookings.List(ctx)) }},
		{"bookings get", func() result { return resultOf(bookings.Get(ctx, 1)) }},
		{"bookings update", func() result { return resultOf(bookings.UpdateStatus(ctx, 1, models.BookingConfirmed)) }},
		{"bookings delete", func() result { return resultOf(bookings.Delete(ctx, 1)) }},
		{"cars list", func() result { return resultOf(cars.List(ctx)) }},
		{"cars get", func() result { return resultOf(cars.Get(ctx, 1)) }},
		{"cars create", func() result { return resultOf(cars.Create(ctx, models.CarInput{Name: "Swift"})) }},
		{"cars update", func() result { return resultOf(cars.SetAvailability(ctx, 1, true, false)) }},
		{"cars delete", func() result { return resultOf(cars.Delete(ctx, 1)) }},
		{"cars booked between", func() result {
			return resultOf(cars.ListBookedBetween(ctx, time.Now().Add(-time.Hour), time.Now()))
		}},
		{"users list", func() result { return resultOf(users.List(ctx)) }},
		{"users get", func() result { return resultOf(users.Get(ctx, 1)) }},
		{"users update", func() result { return resultOf(users.SetVerified(ctx, 1, true)) }},
		{"users delete", func() result { return resultOf(users.Delete(ctx, 1)) }},
		{"vendors list", func() result { return resultOf(vendors.List(ctx)) }},
		{"vendors get", func() result { return resultOf(vendors.Get(ctx, 1)) }},
		{"vendors create", func() result { return resultOf(vendors.Create(ctx, models.AccountInput{Name: "Acme"})) }},
		{"vendors update", func() result { return resultOf(vendors.Update(ctx, 1, models.Patch{"name": "Acme"})) }},
		{"vendors delete", func() result { return resultOf(vendors.Delete(ctx, 1)) }},
		{"parking get", func() result { return resultOf(parking.Get(ctx, 1)) }},
		{"parking create", func() result { return resultOf(parking.Create(ctx, models.ParkingSpotInput{Name: "Central"})) }},
		{"parking update", func() result { return resultOf(parking.Update(ctx, 1, models.Patch{"capacity": 40})) }},
		{"parking delete", func() result { return resultOf(parking.Delete(ctx, 1)) }},
		{"managers get", func() result { return resultOf(managers.Get(ctx, 1)) }},
		{"managers create", func() result { return resultOf(managers.Create(ctx, 3, models.AccountInput{Name: "Ravi"})) }},
		{"managers search", func() result { return resultOf(managers.SearchByPhone(ctx, "9999999999")) }},
		{"managers assign", func() result { return resultOf(managers.Assign(ctx, 3, 9)) }},
		{"managers by parking", func() result { return resultOf(managers.ListByParking(ctx, 3)) }},
		{"managers detach", func() result { return resultOf(managers.Detach(ctx, 9)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.call()
			assert.False(t, got.success)
			assert.Equal(t, NoTokenMessage, got.message)
			assert.Equal(t, models.KindNoToken, got.kind)
		})
	}
	assert.Zero(t, b.transport.calls.Load(), "no request may be sent without a token")
}

func TestBookingsList_NoToken(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	out := NewBookingService(b.client).List(context.Background())

	assert.False(t, out.Success)
	assert.Equal(t, "No access token found", out.Message)
}

func TestCarsList_Success(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cars/getcar", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success":    true,
			"statusCode": 200,
			"data":       []map[string]any{{"id": 1, "name": "Swift"}},
			"message":    "ok",
		})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewCarService(b.client).List(context.Background())

	require.True(t, out.Success)
	require.Len(t, out.Data, 1)
	assert.Equal(t, int64(1), out.Data[0].ID)
	assert.Equal(t, "Swift", out.Data[0].Name)
	assert.Equal(t, "ok", out.Message)
}

func TestCarsDelete_ServerErrorWithoutJSON(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cars/delete/7", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>boom</html>")
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewCarService(b.client).Delete(context.Background(), 7)

	assert.False(t, out.Success)
	assert.Equal(t, "An error occurred while deleting the car", out.Message)
	assert.Equal(t, models.KindTransport, out.Kind)
}

func TestList_PreservesBackendOrder(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": 5}, {"id": 2}, {"id": 9}},
		})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewUserService(b.client).List(context.Background())

	require.True(t, out.Success)
	ids := make([]int64, 0, len(out.Data))
	for _, u := range out.Data {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []int64{5, 2, 9}, ids)
}

func TestRejection_MessagePassThrough(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"backend message wins", http.StatusOK, "Booking not found", "Booking not found"},
		{"empty message falls back", http.StatusOK, "", "Failed to fetch booking"},
		{"error status with envelope", http.StatusNotFound, "No such booking", "No such booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, map[string]any{"success": false, "statusCode": tt.status, "message": tt.message})
			})
			require.NoError(t, b.session.SetToken("tok"))

			out := NewBookingService(b.client).Get(context.Background(), 4)

			assert.False(t, out.Success)
			assert.Equal(t, tt.want, out.Message)
			assert.Equal(t, models.KindBackendRejected, out.Kind)
		})
	}
}

func TestAuthHeaderStyles(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client)
		want string
	}{
		{"car list uses bearer", func(c *Client) { NewCarService(c).List(context.Background()) }, "Bearer tok"},
		{"car update uses raw token", func(c *Client) { NewCarService(c).SetAvailability(context.Background(), 1, false, true) }, "tok"},
		{"vendor list uses raw token", func(c *Client) { NewVendorService(c).List(context.Background()) }, "tok"},
		{"vendor get uses bearer", func(c *Client) { NewVendorService(c).Get(context.Background(), 2) }, "Bearer tok"},
		{"parking list is public", func(c *Client) { NewParkingService(c).List(context.Background()) }, ""},
		{"parking delete uses raw token", func(c *Client) { NewParkingService(c).Delete(context.Background(), 2) }, "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "statusCode": 200, "data": []any{}})
			})
			require.NoError(t, b.session.SetToken("tok"))

			tt.call(b.client)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParkingList_WorksWithoutToken(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"id": 3, "name": "Central"}}})
	})

	out := NewParkingService(b.client).List(context.Background())

	require.True(t, out.Success)
	assert.Equal(t, "Central", out.Data[0].Name)
	assert.EqualValues(t, 1, b.transport.calls.Load())
}

func TestUnsupportedOperations(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})
	require.NoError(t, b.session.SetToken("tok"))
	ctx := context.Background()

	create := NewBookingService(b.client).Create(ctx, map[string]any{"carId": 1})
	assert.False(t, create.Success)
	assert.Equal(t, models.KindUnsupported, create.Kind)
	assert.Equal(t, "create is not supported for bookings", create.Message)

	userCreate := NewUserService(b.client).Create(ctx, models.AccountInput{})
	assert.Equal(t, models.KindUnsupported, userCreate.Kind)

	list := NewParkingManagerService(b.client).List(ctx)
	assert.Equal(t, models.KindUnsupported, list.Kind)

	del := NewParkingManagerService(b.client).Delete(ctx, 1)
	assert.Equal(t, models.KindUnsupported, del.Kind)
	assert.Equal(t, "delete is not supported for parking managers", del.Message)
}

func TestGet_Idempotent(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/booking/getbooking/11", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 11, "status": "pending", "totalAmount": 1200},
		})
	})
	require.NoError(t, b.session.SetToken("tok"))
	svc := NewBookingService(b.client)

	first := svc.Get(context.Background(), 11)
	second := svc.Get(context.Background(), 11)

	require.True(t, first.Success)
	assert.Equal(t, first, second)
	assert.Equal(t, models.BookingPending, first.Data.Status)
}

func TestGet_SuccessWithoutDataIsRejected(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": nil})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewUserService(b.client).Get(context.Background(), 2)

	assert.False(t, out.Success)
	assert.Equal(t, "Failed to fetch user", out.Message)
}

func TestCars_EnvelopeStatusCodeChecked(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "statusCode": 204, "data": []any{}})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewCarService(b.client).List(context.Background())

	assert.False(t, out.Success)
	assert.Equal(t, "Failed to fetch cars", out.Message)
}

func TestCars_StatusCodeCheckedOnListOnly(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "statusCode": 201, "data": map[string]any{"id": 4, "name": "Swift"}})
	})
	require.NoError(t, b.session.SetToken("tok"))
	cars := NewCarService(b.client)

	got := cars.Get(context.Background(), 4)
	require.True(t, got.Success, got.Message)
	assert.Equal(t, "Swift", got.Data.Name)

	created := cars.Create(context.Background(), models.CarInput{Name: "Swift"})
	assert.True(t, created.Success, created.Message)
}

func TestCarsList_MixedNumberEncodings(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true, "statusCode": 200,
			"data": []map[string]any{
				{"id": 1, "name": "Swift", "price": 1200, "seats": 5},
				{"id": 2, "name": "Creta", "price": "1500", "seats": "7", "year": "", "discountedprice": nil},
			},
		})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewCarService(b.client).List(context.Background())

	require.True(t, out.Success, out.Message)
	require.Len(t, out.Data, 2)
	assert.Equal(t, models.FlexFloat(1200), out.Data[0].Price)
	assert.Equal(t, models.FlexFloat(1500), out.Data[1].Price)
	assert.Equal(t, models.FlexInt(7), out.Data[1].Seats)
	assert.Zero(t, out.Data[1].Year)
}

func TestParkingList_PincodeAsString(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 1, "name": "Central", "pincode": 560001, "capacity": 40},
				{"id": 2, "name": "North", "pincode": "560002", "capacity": "25"},
			},
		})
	})

	out := NewParkingService(b.client).List(context.Background())

	require.True(t, out.Success, out.Message)
	assert.Equal(t, models.FlexString("560001"), out.Data[0].Pincode)
	assert.Equal(t, models.FlexString("560002"), out.Data[1].Pincode)
	assert.Equal(t, models.FlexInt(25), out.Data[1].Capacity)
}

func TestDelete_Lenient(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		success bool
		message string
	}{
		{
			name:    "empty 200 body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
			success: true,
			message: "User deleted successfully",
		},
		{
			name: "2xx with success false still deletes",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, map[string]any{"success": false})
			},
			success: true,
			message: "User deleted successfully",
		},
		{
			name: "backend message kept",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "message": "User removed"})
			},
			success: true,
			message: "User removed",
		},
		{
			name: "404 envelope rejects",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
			},
			success: false,
			message: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, tt.handler)
			require.NoError(t, b.session.SetToken("tok"))

			out := NewUserService(b.client).Delete(context.Background(), 8)

			assert.Equal(t, tt.success, out.Success)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

func TestDelete_Strict(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"success": false, "message": "Car has bookings"})
	})
	require.NoError(t, b.session.SetToken("tok"))

	cfg := CarResource
	cfg.StrictDelete = true
	out := NewResource[models.Car](b.client, cfg).Delete(context.Background(), 3)

	assert.False(t, out.Success)
	assert.Equal(t, "Car has bookings", out.Message)
	assert.Equal(t, models.KindBackendRejected, out.Kind)
}

func TestBookingUpdateStatus(t *testing.T) {
	var body map[string]any
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/booking/updatebooking/5", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 5, "status": "confirmed"}})
	})
	require.NoError(t, b.session.SetToken("tok"))
	svc := NewBookingService(b.client)

	bad := svc.UpdateStatus(context.Background(), 5, "teleported")
	assert.False(t, bad.Success)
	assert.Equal(t, models.KindValidation, bad.Kind)
	assert.Zero(t, b.transport.calls.Load())

	out := svc.UpdateStatus(context.Background(), 5, models.BookingConfirmed)
	require.True(t, out.Success)
	assert.Equal(t, map[string]any{"status": "confirmed"}, body)
	assert.Equal(t, models.BookingConfirmed, out.Data.Status)
}

func TestParkingManagers(t *testing.T) {
	var paths []string
	var bodies []map[string]any
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		var body map[string]any
		if r.ContentLength > 0 {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		}
		bodies = append(bodies, body)
		assert.Equal(t, "tok", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/user/getparkinginchargebyparkingid/3":
			writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"id": 9, "role": "parkingincharge"}}})
		default:
			writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 9, "role": "parkingincharge", "parkingid": 3}})
		}
	})
	require.NoError(t, b.session.SetToken("tok"))
	svc := NewParkingManagerService(b.client)
	ctx := context.Background()

	created := svc.Create(ctx, 3, models.AccountInput{Name: "Ravi", Role: models.RoleAdmin})
	require.True(t, created.Success)
	assert.Equal(t, "parkingincharge", bodies[0]["role"], "role is forced")
	assert.EqualValues(t, 3, bodies[0]["parkingid"])

	found := svc.SearchByPhone(ctx, "9876543210")
	require.True(t, found.Success)
	assert.Equal(t, "9876543210", bodies[1]["number"])

	assigned := svc.Assign(ctx, 3, 9)
	require.True(t, assigned.Success)
	assert.EqualValues(t, 3, bodies[2]["parkingid"])
	assert.EqualValues(t, 9, bodies[2]["id"])

	list := svc.ListByParking(ctx, 3)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)
	assert.Equal(t, models.RoleParkingIncharge, list.Data[0].Role)

	detached := svc.Detach(ctx, 9)
	require.True(t, detached.Success)
	assert.Contains(t, bodies[4], "parkingid")
	assert.Nil(t, bodies[4]["parkingid"])

	assert.Equal(t, []string{
		"POST /user/addparkingincharge",
		"POST /user/getparkinginchargebynumber",
		"POST /user/assignparkingincharge",
		"GET /user/getparkinginchargebyparkingid/3",
		"PUT /user/updateuser/9",
	}, paths)
}

func TestVendorCreate_ForcesRole(t *testing.T) {
	var body map[string]any
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 4}})
	})
	require.NoError(t, b.session.SetToken("tok"))

	out := NewVendorService(b.client).Create(context.Background(), models.AccountInput{Name: "Acme", Email: "ops@acme.test"})

	require.True(t, out.Success)
	assert.Equal(t, "vendor", body["role"])
	assert.Equal(t, "ops@acme.test", body["email"])
}

func TestTransportFailure(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, b.session.SetToken("tok"))
	b.server.Close()

	out := NewVendorService(b.client).List(context.Background())

	assert.False(t, out.Success)
	assert.Equal(t, "An error occurred while fetching vendors", out.Message)
	assert.Equal(t, models.KindTransport, out.Kind)
}

func TestCarsListBookedBetween(t *testing.T) {
	var got DateRange
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cars/getcar":
			writeEnvelope(w, http.StatusOK, map[string]any{
				"success": true, "statusCode": 200,
				"data": []map[string]any{{"id": 1, "name": "Swift"}, {"id": 2, "name": "Creta"}, {"id": 3, "name": "Nexon"}},
			})
		case "/booking/bd":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeEnvelope(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    []map[string]any{{"id": 10, "carId": 3}, {"id": 11, "carId": 1}, {"id": 12, "carId": 3}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	require.NoError(t, b.session.SetToken("tok"))
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	out := NewCarService(b.client).ListBookedBetween(context.Background(), start, end)

	require.True(t, out.Success, out.Message)
	names := []string{}
	for _, c := range out.Data {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Swift", "Nexon"}, names)
	assert.True(t, start.Equal(got.StartDate))
	assert.True(t, end.Equal(got.EndDate))
}

func TestBookedBetween_Failures(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	bookings := NewBookingService(b.client)
	now := time.Now()

	out := bookings.BookedBetween(context.Background(), time.Time{}, now)
	assert.Equal(t, models.KindValidation, out.Kind)
	assert.Equal(t, "Please select both start and end date", out.Message)

	out = bookings.BookedBetween(context.Background(), now, now.Add(-time.Hour))
	assert.Equal(t, models.KindValidation, out.Kind)
	assert.Zero(t, b.transport.calls.Load())

	out = bookings.BookedBetween(context.Background(), now.Add(-time.Hour), now)
	assert.False(t, out.Success)
	assert.Equal(t, models.KindTransport, out.Kind)
	assert.Equal(t, "Failed to filter by booking date range", out.Message)
}
