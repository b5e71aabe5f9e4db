package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"villamarisol.com/marisol-web/internal/inquiry"
	mw "villamarisol.com/marisol-web/internal/middleware"
	"villamarisol.com/marisol-web/internal/observability"
)

// contact renders the inquiry form, prefilled from ?topic and ?room.
func (a *app) contact(w http.ResponseWriter, r *http.Request) {
	vm := a.basePage(r, "contact.title", "contact.description", nil)
	q := r.URL.Query()
	form := inquiry.Form{Topic: inquiry.ParseTopic(q.Get("topic"))}
	if rm, ok := a.site.Rooms.Lookup(q.Get("room")); ok {
		form.RoomID = rm.ID
		form.Topic = inquiry.TopicRoom
	}
	st := inquiry.NewState(form)
	if vm.Flash != nil && vm.Flash.Kind == "inquiry" {
		// the redirect after a successful non-JS submission lands here
		st.Status = inquiry.Succeeded
		st.Receipt.ID = vm.Flash.Ref
		vm.Flash = nil
	}
	vm.Contact = a.buildContact(st, vm.Lang, vm.CSRFToken)
	a.finish(&vm)
	a.render.page(w, r, http.StatusOK, "contact", vm)
}

// contactSubmit validates and submits the form. htmx requests get the form
// fragment back in its new state; plain posts redirect after success and
// re-render the page otherwise.
func (a *app) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid_form", "invalid form")
		return
	}
	lang := mw.Lang(r)
	form := inquiry.ParseForm(r.PostForm)
	form.Locale = lang

	ctx := inquiry.WithClientKey(r.Context(), mw.ClientIP(r))
	st := inquiry.Process(ctx, a.inquiry, form, a.now())
	logger := observability.FromContext(r.Context())
	switch st.Status {
	case inquiry.Succeeded:
		logger.Info("inquiry submitted", zap.String("receipt", st.Receipt.ID), zap.String("topic", string(form.Topic)))
	case inquiry.Idle:
		logger.Debug("inquiry invalid", zap.Int("errors", len(st.Errors)))
	}

	if mw.IsHTMX(r.Context()) {
		if st.Status == inquiry.Succeeded {
			if raw, err := json.Marshal(map[string]any{
				"inquiry:submitted": map[string]string{"receipt": st.Receipt.ID, "topic": string(form.Topic)},
			}); err == nil {
				w.Header().Set("HX-Trigger", string(raw))
			}
		}
		a.render.fragment(w, r, "frag_contact_form", a.buildContact(st, lang, mw.CSRFToken(r)))
		return
	}

	if st.Status == inquiry.Succeeded {
		mw.GetSession(r).SetFlash(mw.Flash{Kind: "inquiry", Ref: st.Receipt.ID})
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}
	status := http.StatusUnprocessableEntity
	if st.Status == inquiry.Failed {
		status = http.StatusServiceUnavailable
		if st.Reason == inquiry.ReasonRateLimited {
			status = http.StatusTooManyRequests
		}
	}
	vm := a.basePage(r, "contact.title", "contact.description", nil)
	vm.Contact = a.buildContact(st, lang, vm.CSRFToken)
	a.finish(&vm)
	a.render.page(w, r, status, "contact", vm)
}
