package httpapi

import "net/http"

type createCompanyRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
}

func (a *api) createCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req createCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.CreateCompany(r.Context(), caller, req.Name, req.Slug, req.Location); err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, nil)
}

type updateCompanyProfileRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
	IsPublic  bool   `json:"is_public"`
	KVKNumber string `json:"kvk_number"`
}

func (a *api) updateCompanyProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req updateCompanyProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.UpdateCompanyProfile(r.Context(), caller, req.Name, req.Slug, req.Location, req.Bio, req.IsPublic, req.KVKNumber); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type updateCapabilitiesRequest struct {
	CanInstall     bool `json:"can_install"`
	HasCNC         bool `json:"has_cnc"`
	HasLargeFormat bool `json:"has_large_format"`
	HasBucketTruck bool `json:"has_bucket_truck"`
}

func (a *api) updateCapabilities(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req updateCapabilitiesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.UpdateCapabilities(r.Context(), caller, req.CanInstall, req.HasCNC, req.HasLargeFormat, req.HasBucketTruck); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

type switchActiveCompanyRequest struct {
	CompanyID uint64 `json:"company_id"`
}

func (a *api) switchActiveCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	var req switchActiveCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, errBadRequest)
		return
	}
	if err := a.eng.SwitchActiveCompany(r.Context(), caller, req.CompanyID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}

func (a *api) deleteCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(r)
	if !ok {
		writeError(w, errUnauthenticated)
		return
	}
	if err := a.eng.DeleteCompany(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil)
}
