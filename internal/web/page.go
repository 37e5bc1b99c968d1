package web

import (
	"html/template"

	"github.com/provide-io/erlc/internal/session"
	"github.com/provide-io/erlc/pkg/calculator"
)

type pageData struct {
	Snap                calculator.Snapshot
	LabelErrorReporting string
	LabelPHPIni         string
	LabelRaw            string
}

func newPageData(snap calculator.Snapshot) pageData {
	return pageData{
		Snap:                snap,
		LabelErrorReporting: session.LabelErrorReporting,
		LabelPHPIni:         session.LabelPHPIni,
		LabelRaw:            session.LabelRaw,
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>error_reporting level calculator</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.erlc-constants__constant { display: block; }
.erlc-constants__constant--selected label { font-weight: bold; }
.erlc-preview__item-value { font-family: monospace; }
</style>
</head>
<body>
<div class="erlc-version">
  <select class="erlc-version__select">
  {{- range .Snap.Versions}}
    <option value="{{.Key}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
  {{- end}}
  </select>
</div>

<div class="erlc-constants">
{{- range .Snap.Toggles}}
  <code class="erlc-constants__constant{{if .Checked}} erlc-constants__constant--selected{{end}}" data-value="{{.Value}}" title="{{.Description}}">
    <input class="erlc-constants__constant-checkbox" type="checkbox" id="value-{{.Value}}"{{if .Checked}} checked{{end}}>
    <label class="erlc-constants__constant-label" for="value-{{.Value}}">{{.Name}}</label>
    <span class="erlc-constants__constant-value">{{.Value}}</span>
  </code>
{{- end}}
</div>

<div class="erlc-level">
  <input class="erlc-level__input" type="text" value="{{.Snap.LevelText}}">
</div>

<dl class="erlc-preview">
  <div class="erlc-preview__item erlc-preview__item--error-reporting">
    <dt>{{.LabelErrorReporting}}</dt>
    <dd class="erlc-preview__item-value">{{.Snap.Summary.ErrorReporting}}</dd>
  </div>
  <div class="erlc-preview__item erlc-preview__item--php-ini">
    <dt>{{.LabelPHPIni}}</dt>
    <dd class="erlc-preview__item-value">{{.Snap.Summary.PHPIni}}</dd>
  </div>
  <div class="erlc-preview__item erlc-preview__item--htaccess">
    <dt>{{.LabelRaw}}</dt>
    <dd class="erlc-preview__item-value">{{.Snap.Summary.Raw}}</dd>
  </div>
</dl>

<script>
(function () {
  'use strict';

  function post(path, body) {
    return fetch('/api/' + path, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body)
    }).then(function (r) { return r.json(); });
  }

  function renderConstants(snap) {
    var root = document.querySelector('.erlc-constants');
    root.innerHTML = '';
    snap.toggles.forEach(function (t) {
      var code = document.createElement('code');
      code.className = 'erlc-constants__constant' + (t.checked ? ' erlc-constants__constant--selected' : '');
      code.setAttribute('data-value', t.value);
      code.title = t.description;
      var box = document.createElement('input');
      box.type = 'checkbox';
      box.className = 'erlc-constants__constant-checkbox';
      box.id = 'value-' + t.value;
      box.checked = t.checked;
      var label = document.createElement('label');
      label.className = 'erlc-constants__constant-label';
      label.htmlFor = box.id;
      label.textContent = t.name;
      var value = document.createElement('span');
      value.className = 'erlc-constants__constant-value';
      value.textContent = t.value;
      code.appendChild(box);
      code.appendChild(label);
      code.appendChild(document.createTextNode(' '));
      code.appendChild(value);
      root.appendChild(code);
    });
  }

  // syncChecked updates the existing checkboxes in place. Used for the
  // picker's own toggles, where the list is not rebuilt.
  function syncChecked(snap) {
    snap.toggles.forEach(function (t) {
      var box = document.getElementById('value-' + t.value);
      if (!box) { return; }
      box.checked = t.checked;
      box.parentNode.classList.toggle('erlc-constants__constant--selected', t.checked);
    });
  }

  var regions = {
    constants: renderConstants,
    level: function (snap) {
      document.querySelector('.erlc-level__input').value = snap.level_text;
    },
    summary: function (snap) {
      document.querySelector('.erlc-preview__item--error-reporting .erlc-preview__item-value').textContent = snap.summary.error_reporting;
      document.querySelector('.erlc-preview__item--php-ini .erlc-preview__item-value').textContent = snap.summary.php_ini;
      document.querySelector('.erlc-preview__item--htaccess .erlc-preview__item-value').textContent = snap.summary.raw;
    }
  };

  function apply(resp) {
    if (!resp.snapshot) { return; }
    resp.rendered.forEach(function (name) {
      if (regions[name]) { regions[name](resp.snapshot); }
    });
  }

  document.querySelector('.erlc-version__select').addEventListener('change', function (e) {
    post('version', {key: e.target.value}).then(apply);
  });

  document.querySelector('.erlc-constants').addEventListener('click', function (e) {
    if (!e.target.classList.contains('erlc-constants__constant-checkbox')) { return; }
    var code = e.target.parentNode;
    post('toggle', {value: Number(code.getAttribute('data-value')), checked: e.target.checked}).then(function (resp) {
      if (resp.snapshot) { syncChecked(resp.snapshot); }
      apply(resp);
    });
  });

  document.querySelector('.erlc-level__input').addEventListener('keyup', function (e) {
    post('level', {text: e.target.value}).then(apply);
  });
}());
</script>
</body>
</html>
`))
