package kommo

type customFieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

type customField struct {
	FieldCode string             `json:"field_code"`
	Values    []customFieldValue `json:"values"`
}

type contactRequest struct {
	Name         string        `json:"name"`
	FirstName    string        `json:"first_name,omitempty"`
	LastName     string        `json:"last_name,omitempty"`
	CustomFields []customField `json:"custom_fields_values,omitempty"`
}

type tag struct {
	Name string `json:"name"`
}

type embeddedRef struct {
	ID int `json:"id"`
}

type leadEmbedded struct {
	Tags     []tag         `json:"tags,omitempty"`
	Contacts []embeddedRef `json:"contacts,omitempty"`
}

type leadRequest struct {
	Name     string       `json:"name"`
	StatusID int          `json:"status_id,omitempty"`
	Embedded leadEmbedded `json:"_embedded"`
}

type listResponse struct {
	Embedded struct {
		Leads    []embeddedRef `json:"leads"`
		Contacts []embeddedRef `json:"contacts"`
	} `json:"_embedded"`
}
