// Package cnc exposes a service.DeviceService over HTTP.  Clients
// enumerate and attach controllers, read model snapshots as JSON, and
// push raw command lines; everything stateful stays in the service.
package cnc

import (
	"encoding/json"
	"net/http"

	"goji.io/pat"

	"github.com/vgerber/grbl-interface/generichttp"
	"github.com/vgerber/grbl-interface/service"
)

// HTTPDeviceService wraps a DeviceService in a route table.
type HTTPDeviceService struct {
	svc *service.DeviceService

	RouteTable generichttp.RouteTable
}

// NewHTTPDeviceService builds the route table around svc.
func NewHTTPDeviceService(svc *service.DeviceService) HTTPDeviceService {
	h := HTTPDeviceService{svc: svc}
	rt := generichttp.RouteTable{
		pat.Get("/devices"):               h.availableDevices,
		pat.Post("/devices/open"):         generichttp.SetString(h.openDevice),
		pat.Post("/devices/close"):        generichttp.SetString(svc.CloseDevice),
		pat.Get("/devices/:id/info"):      h.deviceInfo,
		pat.Get("/devices/:id/connected"): h.connected,
		pat.Post("/devices/:id/command"):  h.writeCommand,
		pat.Post("/devices/:id/poll"):     h.enablePolling,
		pat.Delete("/devices/:id/poll"):   h.disablePolling,
	}
	h.RouteTable = rt
	return h
}

// RT satisfies generichttp.HTTPer
func (h HTTPDeviceService) RT() generichttp.RouteTable {
	return h.RouteTable
}

func (h HTTPDeviceService) availableDevices(w http.ResponseWriter, r *http.Request) {
	devices := h.svc.GetAvailableDevices()
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ids); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h HTTPDeviceService) openDevice(id string) error {
	return h.svc.OpenDevice(service.DeviceDescription{ID: id, Kind: service.Serial})
}

func (h HTTPDeviceService) deviceInfo(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	info, err := h.svc.GetDeviceInfo(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshotPayload(info)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h HTTPDeviceService) connected(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	generichttp.GetBool(func() (bool, error) {
		return h.svc.IsDeviceConnected(id), nil
	})(w, r)
}

func (h HTTPDeviceService) writeCommand(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	generichttp.SetString(func(line string) error {
		return h.svc.WriteDeviceCommand(id, line)
	})(w, r)
}

func (h HTTPDeviceService) enablePolling(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	generichttp.SetFloat(func(hz float64) error {
		return h.svc.EnableStatusPolling(id, hz)
	})(w, r)
}

func (h HTTPDeviceService) disablePolling(w http.ResponseWriter, r *http.Request) {
	id := pat.Param(r, "id")
	if err := h.svc.DisableStatusPolling(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
