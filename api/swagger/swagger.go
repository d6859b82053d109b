package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PBIS Gateway API",
        "description": "Session-gated gateway composing the PBIS data API into dashboard pages",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization",
            "description": "Bearer session token; browsers send the pbis_session cookie instead"
        }
    },
    "paths": {
        "/admin/audit-logs": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Recent admin actions",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "user_id",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Filter by actor"
                    },
                    {
                        "name": "action",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Filter by action"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "At most 500"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/auth/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate user",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Login payload",
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Logout current session",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/auth/me": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Get current user",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/board": {
            "get": {
                "tags": [
                    "Board"
                ],
                "summary": "List board posts",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Board"
                ],
                "summary": "Publish a board post",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Post",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/board/{id}": {
            "delete": {
                "tags": [
                    "Board"
                ],
                "summary": "Delete a board post",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Post ID"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/meeting-notes": {
            "get": {
                "tags": [
                    "Meetings"
                ],
                "summary": "List meeting notes",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "type",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "tier1, tier2, tier3 or consultation"
                    },
                    {
                        "name": "student",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Student code"
                    },
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Meetings"
                ],
                "summary": "Record a meeting note",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Note",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/meeting-notes/ai-minutes": {
            "post": {
                "tags": [
                    "Meetings"
                ],
                "summary": "AI meeting minutes",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Period",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/meeting-notes/analysis": {
            "get": {
                "tags": [
                    "Meetings"
                ],
                "summary": "Tier meeting candidates",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/grid": {
            "get": {
                "tags": [
                    "CICO"
                ],
                "summary": "Load the monthly CICO grid",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "type": "integer",
                        "required": true,
                        "description": "3-12"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/grid/cells": {
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Edit one grid cell",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Edit",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/grid/status": {
            "get": {
                "tags": [
                    "CICO"
                ],
                "summary": "Grid save status",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "type": "integer",
                        "required": true,
                        "description": "3-12"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/grid/flush": {
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Save pending grid edits now",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "type": "integer",
                        "required": true,
                        "description": "3-12"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/generate": {
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Create a month's sheet",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Month",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/settings": {
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Update a student's sheet settings",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Settings",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/daily": {
            "get": {
                "tags": [
                    "CICO"
                ],
                "summary": "Daily batch input values",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD, defaults to today"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Submit the daily batch",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Batch",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/dashboard": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "School-wide dashboard",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/dashboard/refresh": {
            "post": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Recompute the dashboard aggregate",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/charts/trend.png": {
            "get": {
                "tags": [
                    "Charts"
                ],
                "summary": "Weekly incident trend chart",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/charts/big5/{dimension}": {
            "get": {
                "tags": [
                    "Charts"
                ],
                "summary": "Big-5 breakdown chart",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "dimension",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "locations, times or behaviors"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/charts/tiers.png": {
            "get": {
                "tags": [
                    "Charts"
                ],
                "summary": "Tier distribution chart",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/nav": {
            "get": {
                "tags": [
                    "Navigation"
                ],
                "summary": "Navigation shell",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/date-range": {
            "get": {
                "tags": [
                    "DateRange"
                ],
                "summary": "Current date range",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "DateRange"
                ],
                "summary": "Change date range",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Date range",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/date-range/events": {
            "get": {
                "tags": [
                    "DateRange"
                ],
                "summary": "Date range change stream",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/exports": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "summary": "Generate an export",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Export",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download an export",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Signed token"
                    }
                ]
            }
        },
        "/reports/tier1": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Tier 1 school-wide report",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/reports/tier3": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Tier 3 report",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    },
                    {
                        "name": "endDate",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/report": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "CICO decision report",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "month",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "3-12, defaults to the current month"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/ai-analysis": {
            "post": {
                "tags": [
                    "Reports"
                ],
                "summary": "AI analysis of CICO data",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Analysis request",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/roster": {
            "get": {
                "tags": [
                    "Roster"
                ],
                "summary": "Class roster",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/roster/codes": {
            "get": {
                "tags": [
                    "Roster"
                ],
                "summary": "Roster codes with presets",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Roster"
                ],
                "summary": "Replace the code mapping",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Codes",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/tier/status": {
            "get": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Tier status board",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Toggle tier columns",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Tier flags",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/tier/enrollment": {
            "put": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Set enrollment",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Enrollment",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/tier/beable": {
            "put": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Set BeAble code",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "BeAble code",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/students/tier-update": {
            "post": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Move a student to a tier",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Tier change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/students/{name}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Student detail",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "name",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student name"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/students/{name}/analysis": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Student behavior analysis",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "name",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student name"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/bip/{code}": {
            "get": {
                "tags": [
                    "BIP"
                ],
                "summary": "Behavior intervention plan",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student code"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "BIP"
                ],
                "summary": "Save a behavior intervention plan",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student code"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Plan",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/bip/{code}/ai-suggest": {
            "post": {
                "tags": [
                    "BIP"
                ],
                "summary": "AI suggestion merged into a plan preview",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student code"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "AI request",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/bip/{code}/ai-hypothesis": {
            "post": {
                "tags": [
                    "BIP"
                ],
                "summary": "AI draft of the target behavior, hypothesis and goals",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student code"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "description": "Unsaved draft",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/bip/{code}/ai-strategies": {
            "post": {
                "tags": [
                    "BIP"
                ],
                "summary": "AI draft of the four strategy sections",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "code",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "Student code"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "description": "Unsaved draft",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/tier/cico": {
            "get": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Tier 2 daily card page",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "student_code",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Defaults to the first Tier 2 student"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Tiers"
                ],
                "summary": "Enter a Tier 2 daily card",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Card",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/cico/tier2-toggle": {
            "post": {
                "tags": [
                    "CICO"
                ],
                "summary": "Mark a student's monthly row as Tier 2",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Toggle",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/users": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create user",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "User",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete user",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "User ID"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/users/{id}/role": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Change a user's role",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "User ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Role",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/users/{id}/password": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Reset a user's password",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "User ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Password",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/holidays": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "List holidays",
                "responses": {
                    "200": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Add holiday",
                "responses": {
                    "201": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Holiday",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        },
        "/admin/holidays/{date}": {
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete holiday",
                "responses": {
                    "204": {
                        "description": "Envelope",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "date",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "description": "YYYY-MM-DD"
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
