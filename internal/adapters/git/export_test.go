package git

var CloneURL = cloneURL
